package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Message string `json:"message"`
}

func unauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Message: "authentication required"})
}

func tooManyRequestsError(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, errorResponse{Message: "too many requests"})
}
