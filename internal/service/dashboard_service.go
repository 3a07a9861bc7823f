package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// recentActivityLimit is how many feed rows the dashboard surfaces.
const recentActivityLimit = 10

// DashboardService derives the current-month 50/30/20 summary
type DashboardService struct {
	incomeRepo  domain.IncomeRepository
	expenseRepo domain.ExpenseRepository
	feedService *FeedService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(incomeRepo domain.IncomeRepository, expenseRepo domain.ExpenseRepository, feedService *FeedService) *DashboardService {
	return &DashboardService{
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		feedService: feedService,
	}
}

// GetSummary returns the calendar-month totals, the per-bucket budget
// lines and the most recent activity. Recent activity is the feed's first
// page, newest first, not a separate query path.
func (s *DashboardService) GetSummary(ctx context.Context, userID int64) (*domain.DashboardSummary, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	totalIncome, err := s.incomeRepo.SumByDateRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	totalExpenses, err := s.expenseRepo.SumByDateRange(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	spentByBucket, err := s.expenseRepo.SumByBucket(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	buckets := make(map[domain.BudgetType]domain.BucketSummary, len(domain.BucketShares))
	for bucket, share := range domain.BucketShares {
		budget := totalIncome.Mul(share).Round(2)
		spent := spentByBucket[bucket]
		if spent.IsZero() {
			spent = decimal.Zero
		}
		buckets[bucket] = domain.BucketSummary{
			Budget:    budget,
			Spent:     spent,
			Remaining: budget.Sub(spent),
		}
	}

	recent, err := s.feedService.GetPage(ctx, userID, &FeedRequest{Limit: recentActivityLimit})
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		Month:          monthStart.Format("2006-01"),
		TotalIncome:    totalIncome,
		TotalExpenses:  totalExpenses,
		Buckets:        buckets,
		RecentActivity: recent.Items,
	}, nil
}
