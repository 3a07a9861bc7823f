package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubParser struct {
	userID int64
	err    error
}

func (p *stubParser) ParseToken(token string) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.userID, nil
}

func runAuth(t *testing.T, parser TokenParser, authHeader string) (*httptest.ResponseRecorder, int64) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID int64
	handler := NewAuthMiddleware(parser).Authenticate()(func(c echo.Context) error {
		gotUserID = GetUserID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rec, gotUserID
}

func TestAuthenticate_ValidToken(t *testing.T) {
	rec, userID := runAuth(t, &stubParser{userID: 7}, "Bearer sometoken")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if userID != 7 {
		t.Errorf("Expected user id 7 in context, got %d", userID)
	}
}

func TestAuthenticate_BearerPrefixCaseInsensitive(t *testing.T) {
	rec, userID := runAuth(t, &stubParser{userID: 7}, "bearer sometoken")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if userID != 7 {
		t.Errorf("Expected user id 7 in context, got %d", userID)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	badToken := &stubParser{err: errors.New("bad signature")}
	good := &stubParser{userID: 7}

	tests := []struct {
		name   string
		parser TokenParser
		header string
	}{
		{"missing header", good, ""},
		{"wrong scheme", good, "Basic dXNlcjpwYXNz"},
		{"empty token", good, "Bearer "},
		{"invalid token", badToken, "Bearer sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, userID := runAuth(t, tt.parser, tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", rec.Code)
			}
			if userID != 0 {
				t.Errorf("Expected no user id in context, got %d", userID)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if body["message"] == "" {
				t.Error("Expected an error message")
			}
		})
	}
}

func TestGetUserID_UnauthenticatedIsZero(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if id := GetUserID(c); id != 0 {
		t.Errorf("Expected 0, got %d", id)
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, 2)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("Expected the burst to be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Expected the request over the burst to be blocked")
	}

	// Limits are per client.
	if !rl.Allow("10.0.0.2") {
		t.Error("Expected a different client to be unaffected")
	}
}

func TestRateLimitMiddleware_Returns429(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	e := echo.New()
	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != want {
			t.Errorf("Request %d: expected status %d, got %d", i, want, rec.Code)
		}
	}
}
