package domain

import (
	"context"
	"strings"
	"time"
)

// BudgetType is the 50/30/20 bucket a category belongs to.
type BudgetType string

const (
	BudgetTypeNecessities BudgetType = "necessities"
	BudgetTypeLeisure     BudgetType = "leisure"
	BudgetTypeSavings     BudgetType = "savings"
)

// ParseBudgetType validates a budget bucket value, case-insensitively.
func ParseBudgetType(s string) (BudgetType, error) {
	switch BudgetType(strings.ToLower(strings.TrimSpace(s))) {
	case BudgetTypeNecessities:
		return BudgetTypeNecessities, nil
	case BudgetTypeLeisure:
		return BudgetTypeLeisure, nil
	case BudgetTypeSavings:
		return BudgetTypeSavings, nil
	default:
		return "", ErrInvalidBudgetType
	}
}

type Category struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	Name       string     `json:"name"`
	BudgetType BudgetType `json:"budgetType"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, userID, id int64) (*Category, error)
	// GetByName matches case-insensitively on the trimmed name.
	GetByName(ctx context.Context, userID int64, name string) (*Category, error)
	GetAllByUser(ctx context.Context, userID int64) ([]*Category, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	UpdateBudgetType(ctx context.Context, userID, id int64, budgetType BudgetType) error
	Delete(ctx context.Context, userID, id int64) error
	HasExpenses(ctx context.Context, userID, id int64) (bool, error)
}
