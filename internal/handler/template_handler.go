package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aliyevk1/bdgtweb/internal/domain"
	"github.com/aliyevk1/bdgtweb/internal/middleware"
	"github.com/aliyevk1/bdgtweb/internal/service"
)

// TemplateHandler handles template document export and import
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// ImportCounts breaks an import result down by entity
type ImportCounts struct {
	Categories int `json:"categories"`
	Recurring  int `json:"recurring"`
}

// ImportResponse reports what an import wrote and what it skipped
type ImportResponse struct {
	Inserted ImportCounts `json:"inserted"`
	Skipped  ImportCounts `json:"skipped"`
}

// Export returns the user's category and recurring configuration as a
// versioned JSON document.
func (h *TemplateHandler) Export(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	doc, err := h.templateService.Export(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(http.StatusOK, doc)
}

// Import applies a template document to the user's account. The import is
// atomic and idempotent; replaying a document inserts nothing new.
func (h *TemplateHandler) Import(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	// Read one byte past the cap to distinguish "too large" from "at the
	// limit" without buffering an unbounded body.
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, domain.MaxImportPayloadBytes+1))
	if err != nil {
		return NewValidationError(c, "unable to read request body")
	}
	if len(body) > domain.MaxImportPayloadBytes {
		return NewValidationError(c, "template document exceeds 1MB")
	}

	var doc domain.TemplateDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return NewValidationError(c, "invalid template document")
	}

	result, err := h.templateService.Import(c.Request().Context(), userID, &doc)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(http.StatusOK, ImportResponse{
		Inserted: ImportCounts{Categories: result.InsertedCategories, Recurring: result.InsertedRecurring},
		Skipped:  ImportCounts{Categories: result.SkippedCategories, Recurring: result.SkippedRecurring},
	})
}
