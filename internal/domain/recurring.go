package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RecurringTemplate is a data-entry convenience: it pre-fills an expense
// form but never generates transactions on its own.
type RecurringTemplate struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	CategoryID  int64           `json:"categoryId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type RecurringTemplateRepository interface {
	Create(ctx context.Context, template *RecurringTemplate) (*RecurringTemplate, error)
	GetAllByUser(ctx context.Context, userID int64) ([]*RecurringTemplate, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
	// Exists reports whether the user already has a template with this
	// category and description (description compared case-insensitively).
	Exists(ctx context.Context, userID, categoryID int64, description string) (bool, error)
}
