package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// ExpenseService handles expense-record business logic
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.CategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.CategoryRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, categoryRepo: categoryRepo}
}

// CreateExpense records an expense. The category, when given, must belong
// to the same user; a nil spentAt means now.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID int64, amount decimal.Decimal, description *string, categoryID *int64, spentAt *time.Time) (*domain.ExpenseRecord, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if trimmed == "" {
			description = nil
		} else if len(trimmed) > domain.MaxDescriptionLength {
			return nil, domain.ErrInvalidDescription
		} else {
			description = &trimmed
		}
	}

	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, userID, *categoryID); err != nil {
			return nil, err
		}
	}

	when := time.Now().UTC()
	if spentAt != nil {
		when = spentAt.UTC()
	}

	return s.expenseRepo.Create(ctx, &domain.ExpenseRecord{
		UserID:      userID,
		Amount:      amount,
		Description: description,
		CategoryID:  categoryID,
		SpentAt:     when,
	})
}

// GetExpenses retrieves the user's expense records, newest first.
func (s *ExpenseService) GetExpenses(ctx context.Context, userID int64) ([]*domain.ExpenseRecord, error) {
	return s.expenseRepo.GetAllByUser(ctx, userID, listLimit)
}

// DeleteExpense removes one of the user's expense records.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, id int64) error {
	return s.expenseRepo.Delete(ctx, userID, id)
}
