package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// ErrorResponse is the error envelope for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// NewValidationError creates a 400 response
func NewValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// NewUnauthorizedError creates a 401 response
func NewUnauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: message})
}

// NewNotFoundError creates a 404 response
func NewNotFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Message: message})
}

// NewConflictError creates a 409 response
func NewConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, ErrorResponse{Message: message})
}

// NewInternalError creates a 500 response. The message is always generic;
// details stay in the server log.
func NewInternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "an internal error occurred"})
}

// mapDomainError turns a service error into the matching HTTP response.
// Anything unrecognized is an internal failure: logged, not surfaced.
func mapDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrIncompatibleFilters),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidBudgetType),
		errors.Is(err, domain.ErrInvalidCategoryName),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrUsernameLength),
		errors.Is(err, domain.ErrPasswordLength),
		errors.Is(err, domain.ErrCategoryLimit),
		errors.Is(err, domain.ErrRecurringLimit),
		errors.Is(err, domain.ErrCategoryInUse),
		errors.Is(err, domain.ErrInvalidTemplate):
		return NewValidationError(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return NewUnauthorizedError(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicateCategory):
		return NewConflictError(c, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrIncomeNotFound),
		errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrRecurringNotFound):
		return NewNotFoundError(c, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		return NewInternalError(c)
	}
}

// parseTimestamp accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
// It returns whether the value was date-only, so inclusive upper bounds
// can be stretched to the end of that day.
func parseTimestamp(raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if t, err = time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true, nil
	}
	if t, err = time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, err
}
