package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aliyevk1/bdgtweb/internal/middleware"
	"github.com/aliyevk1/bdgtweb/internal/service"
)

// DashboardHandler serves the current-month 50/30/20 summary
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// BucketResponse is one bucket's budget line
type BucketResponse struct {
	Budget    string `json:"budget"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
}

// DashboardResponse represents the dashboard summary in API responses
type DashboardResponse struct {
	Month          string                    `json:"month"`
	TotalIncome    string                    `json:"totalIncome"`
	TotalExpenses  string                    `json:"totalExpenses"`
	Buckets        map[string]BucketResponse `json:"buckets"`
	RecentActivity []TransactionItem         `json:"recentActivity"`
}

// GetSummary returns the month's totals, bucket breakdown and most recent
// activity.
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "authentication required")
	}

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	buckets := make(map[string]BucketResponse, len(summary.Buckets))
	for bucket, line := range summary.Buckets {
		buckets[string(bucket)] = BucketResponse{
			Budget:    line.Budget.StringFixed(2),
			Spent:     line.Spent.StringFixed(2),
			Remaining: line.Remaining.StringFixed(2),
		}
	}

	recent := make([]TransactionItem, 0, len(summary.RecentActivity))
	for _, item := range summary.RecentActivity {
		recent = append(recent, toTransactionItem(item))
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Month:          summary.Month,
		TotalIncome:    summary.TotalIncome.StringFixed(2),
		TotalExpenses:  summary.TotalExpenses.StringFixed(2),
		Buckets:        buckets,
		RecentActivity: recent,
	})
}
