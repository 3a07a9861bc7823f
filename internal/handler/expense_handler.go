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

// ExpenseHandler handles expense-record HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// ExpenseResponse represents an expense record in API responses
type ExpenseResponse struct {
	ID          int64   `json:"id"`
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
	Date        string  `json:"date"`
}

func toExpenseResponse(expense *domain.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount.StringFixed(2),
		Description: expense.Description,
		CategoryID:  expense.CategoryID,
		Date:        expense.SpentAt.UTC().Format(time.RFC3339),
	}
}

// CreateExpense records an expense, optionally assigned to a category.
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "amount must be a decimal number")
	}

	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return NewValidationError(c, "invalid category id")
	}

	var spentAt *time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, _, err := parseTimestamp(*req.Date)
		if err != nil {
			return NewValidationError(c, "date must be RFC 3339 or YYYY-MM-DD")
		}
		spentAt = &parsed
	}

	expense, err := h.expenseService.CreateExpense(c.Request().Context(), userID, amount, req.Description, req.CategoryID, spentAt)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses lists the user's expense records, newest first.
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	records, err := h.expenseService.GetExpenses(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	response := make([]ExpenseResponse, 0, len(records))
	for _, expense := range records {
		response = append(response, toExpenseResponse(expense))
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteExpense removes one of the user's expense records.
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return NewValidationError(c, "invalid expense id")
	}

	if err := h.expenseService.DeleteExpense(c.Request().Context(), userID, id); err != nil {
		return mapDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
