package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseRecord struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	CategoryID  *int64          `json:"categoryId,omitempty"`
	SpentAt     time.Time       `json:"spentAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *ExpenseRecord) (*ExpenseRecord, error)
	GetByID(ctx context.Context, userID, id int64) (*ExpenseRecord, error)
	GetAllByUser(ctx context.Context, userID int64, limit int) ([]*ExpenseRecord, error)
	Delete(ctx context.Context, userID, id int64) error
	// SumByDateRange totals all expenses with spent_at in [start, end).
	SumByDateRange(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error)
	// SumByBucket totals categorized expenses with spent_at in [start, end),
	// grouped by the referenced category's budget bucket. Uncategorized
	// expenses contribute to SumByDateRange but to no bucket.
	SumByBucket(ctx context.Context, userID int64, start, end time.Time) (map[BudgetType]decimal.Decimal, error)
}
