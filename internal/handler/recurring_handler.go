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

// RecurringHandler handles recurring-template HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringRequest represents the create template request body
type CreateRecurringRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CategoryID  int64  `json:"categoryId"`
}

// RecurringResponse represents a recurring template in API responses
type RecurringResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CategoryID  int64  `json:"categoryId"`
	CreatedAt   string `json:"createdAt"`
}

func toRecurringResponse(template *domain.RecurringTemplate) RecurringResponse {
	return RecurringResponse{
		ID:          template.ID,
		Description: template.Description,
		Amount:      template.Amount.StringFixed(2),
		CategoryID:  template.CategoryID,
		CreatedAt:   template.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateTemplate stores a recurring expense template.
func (h *RecurringHandler) CreateTemplate(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	var req CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	if req.CategoryID <= 0 {
		return NewValidationError(c, "invalid category id")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "amount must be a decimal number")
	}

	template, err := h.recurringService.CreateTemplate(c.Request().Context(), userID, req.CategoryID, req.Description, amount)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, toRecurringResponse(template))
}

// GetTemplates lists the user's recurring templates.
func (h *RecurringHandler) GetTemplates(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	templates, err := h.recurringService.GetTemplates(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	response := make([]RecurringResponse, 0, len(templates))
	for _, template := range templates {
		response = append(response, toRecurringResponse(template))
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteTemplate removes one of the user's recurring templates.
func (h *RecurringHandler) DeleteTemplate(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return NewValidationError(c, "invalid template id")
	}

	if err := h.recurringService.DeleteTemplate(c.Request().Context(), userID, id); err != nil {
		return mapDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
