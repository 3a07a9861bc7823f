package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aliyevk1/bdgtweb/internal/domain"
	"github.com/aliyevk1/bdgtweb/internal/middleware"
	"github.com/aliyevk1/bdgtweb/internal/service"
)

// CategoryHandler handles spending-category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name       string `json:"name"`
	BudgetType string `json:"budgetType"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	BudgetType string `json:"budgetType"`
	CreatedAt  string `json:"createdAt"`
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:         category.ID,
		Name:       category.Name,
		BudgetType: string(category.BudgetType),
		CreatedAt:  category.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateCategory creates a spending category.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), userID, req.Name, req.BudgetType)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories lists the user's categories.
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	categories, err := h.categoryService.GetCategories(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteCategory removes a category unless expenses still reference it.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return NewValidationError(c, "invalid category id")
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), userID, id); err != nil {
		return mapDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
