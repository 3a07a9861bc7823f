package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/domain"
	"github.com/aliyevk1/bdgtweb/internal/middleware"
	"github.com/aliyevk1/bdgtweb/internal/service"
)

// IncomeHandler handles income-record HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// CreateIncomeRequest represents the create income request body
type CreateIncomeRequest struct {
	Amount string  `json:"amount"`
	Source *string `json:"source,omitempty"`
	Date   *string `json:"date,omitempty"`
}

// IncomeResponse represents an income record in API responses
type IncomeResponse struct {
	ID     int64   `json:"id"`
	Amount string  `json:"amount"`
	Source *string `json:"source,omitempty"`
	Date   string  `json:"date"`
}

func toIncomeResponse(income *domain.IncomeRecord) IncomeResponse {
	return IncomeResponse{
		ID:     income.ID,
		Amount: income.Amount.StringFixed(2),
		Source: income.Source,
		Date:   income.OccurredAt.UTC().Format(time.RFC3339),
	}
}

// CreateIncome records an income amount.
func (h *IncomeHandler) CreateIncome(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	var req CreateIncomeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "amount must be a decimal number")
	}

	var occurredAt *time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, _, err := parseTimestamp(*req.Date)
		if err != nil {
			return NewValidationError(c, "date must be RFC 3339 or YYYY-MM-DD")
		}
		occurredAt = &parsed
	}

	income, err := h.incomeService.CreateIncome(c.Request().Context(), userID, amount, req.Source, occurredAt)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, toIncomeResponse(income))
}

// GetIncome lists the user's income records, newest first.
func (h *IncomeHandler) GetIncome(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	records, err := h.incomeService.GetIncome(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	response := make([]IncomeResponse, 0, len(records))
	for _, income := range records {
		response = append(response, toIncomeResponse(income))
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteIncome removes one of the user's income records.
func (h *IncomeHandler) DeleteIncome(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return NewValidationError(c, "invalid income id")
	}

	if err := h.incomeService.DeleteIncome(c.Request().Context(), userID, id); err != nil {
		return mapDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
