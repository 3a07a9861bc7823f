package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type IncomeRecord struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	Amount     decimal.Decimal `json:"amount"`
	Source     *string         `json:"source,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type IncomeRepository interface {
	Create(ctx context.Context, income *IncomeRecord) (*IncomeRecord, error)
	GetByID(ctx context.Context, userID, id int64) (*IncomeRecord, error)
	GetAllByUser(ctx context.Context, userID int64, limit int) ([]*IncomeRecord, error)
	Delete(ctx context.Context, userID, id int64) error
	// SumByDateRange totals income with occurred_at in [start, end).
	SumByDateRange(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error)
}

// ValidateAmount enforces the monetary invariant shared by income, expenses
// and recurring templates: strictly positive, at most two decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.Exponent() < -2 && !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}
