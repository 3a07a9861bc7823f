package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aliyevk1/bdgtweb/internal/domain"
	"github.com/aliyevk1/bdgtweb/internal/middleware"
	"github.com/aliyevk1/bdgtweb/internal/service"
)

// TransactionHandler serves the unified, cursor-paginated transaction feed
type TransactionHandler struct {
	feedService *service.FeedService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(feedService *service.FeedService) *TransactionHandler {
	return &TransactionHandler{feedService: feedService}
}

// TransactionItem represents one feed row in API responses
type TransactionItem struct {
	ID                 int64   `json:"id"`
	Type               string  `json:"type"`
	Amount             string  `json:"amount"`
	Date               string  `json:"date"`
	Source             *string `json:"source,omitempty"`
	Description        *string `json:"description,omitempty"`
	CategoryID         *int64  `json:"category_id,omitempty"`
	CategoryName       *string `json:"category_name,omitempty"`
	CategoryBudgetType *string `json:"category_budget_type,omitempty"`
}

// TransactionFeedResponse is one page of the feed. NextCursor is null on
// the last page.
type TransactionFeedResponse struct {
	Items      []TransactionItem `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}

func toTransactionItem(item *domain.FeedItem) TransactionItem {
	out := TransactionItem{
		ID:           item.ID,
		Type:         string(item.Type()),
		Amount:       item.Amount.StringFixed(2),
		Date:         item.Timestamp.UTC().Format(time.RFC3339),
		Source:       item.Source,
		Description:  item.Description,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
	}
	if item.CategoryBudgetType != nil {
		bt := string(*item.CategoryBudgetType)
		out.CategoryBudgetType = &bt
	}
	return out
}

// GetTransactions returns one page of the merged income+expense stream.
//
// Query parameters: limit (1-50, clamped, default 20), sort (newest|oldest,
// case-insensitive, unknown values mean newest), cursor (opaque token from
// a previous page), type (income|expense), category_id (positive integer
// or the literal "uncategorized"), from/to (inclusive date or timestamp
// bounds).
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	req := &service.FeedRequest{
		Sort:   c.QueryParam("sort"),
		Cursor: c.QueryParam("cursor"),
	}

	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			req.Limit = limit
		}
	}

	if raw := c.QueryParam("type"); raw != "" {
		switch strings.ToLower(raw) {
		case string(domain.TransactionTypeIncome):
			t := domain.TransactionTypeIncome
			req.Type = &t
		case string(domain.TransactionTypeExpense):
			t := domain.TransactionTypeExpense
			req.Type = &t
		default:
			return NewValidationError(c, "type must be income or expense")
		}
	}

	if raw := c.QueryParam("category_id"); raw != "" {
		if raw == "uncategorized" {
			req.Uncategorized = true
		} else {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return NewValidationError(c, "category_id must be a positive integer or \"uncategorized\"")
			}
			req.CategoryID = &id
		}
	}

	if raw := c.QueryParam("from"); raw != "" {
		from, _, err := parseTimestamp(raw)
		if err != nil {
			return NewValidationError(c, "from must be RFC 3339 or YYYY-MM-DD")
		}
		req.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, dateOnly, err := parseTimestamp(raw)
		if err != nil {
			return NewValidationError(c, "to must be RFC 3339 or YYYY-MM-DD")
		}
		if dateOnly {
			// A bare date is an inclusive bound on the whole day.
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		req.To = &to
	}

	page, err := h.feedService.GetPage(c.Request().Context(), userID, req)
	if err != nil {
		return mapDomainError(c, err)
	}

	items := make([]TransactionItem, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toTransactionItem(item))
	}
	return c.JSON(http.StatusOK, TransactionFeedResponse{
		Items:      items,
		NextCursor: page.NextCursor,
	})
}
