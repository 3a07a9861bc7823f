package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// UserIDKey is the context key for the authenticated user's id
const UserIDKey contextKey = "user_id"

// TokenParser validates a bearer token and resolves the user it belongs
// to. Implemented by service.AuthService.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// AuthMiddleware provides bearer-token validation middleware
type AuthMiddleware struct {
	parser TokenParser
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(parser TokenParser) *AuthMiddleware {
	return &AuthMiddleware{parser: parser}
}

// Authenticate returns an Echo middleware that validates the Authorization
// header and stores the user id in the request context. Failures are
// reported with one generic message; the response never says which part of
// the credential was wrong.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return unauthorizedError(c)
			}

			userID, err := m.parser.ParseToken(parts[1])
			if err != nil {
				return unauthorizedError(c)
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's id, or 0 when the request
// was not authenticated.
func GetUserID(c echo.Context) int64 {
	id, _ := c.Request().Context().Value(UserIDKey).(int64)
	return id
}
