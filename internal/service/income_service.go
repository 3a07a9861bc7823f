package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// listLimit bounds the convenience list endpoints. The transaction feed is
// the canonical way to page through the full history.
const listLimit = 100

// IncomeService handles income-record business logic
type IncomeService struct {
	incomeRepo domain.IncomeRepository
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(incomeRepo domain.IncomeRepository) *IncomeService {
	return &IncomeService{incomeRepo: incomeRepo}
}

// CreateIncome records an income amount. A nil occurredAt means now.
func (s *IncomeService) CreateIncome(ctx context.Context, userID int64, amount decimal.Decimal, source *string, occurredAt *time.Time) (*domain.IncomeRecord, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if source != nil {
		trimmed := strings.TrimSpace(*source)
		if trimmed == "" {
			source = nil
		} else if len(trimmed) > domain.MaxSourceLength {
			return nil, domain.ErrInvalidDescription
		} else {
			source = &trimmed
		}
	}

	when := time.Now().UTC()
	if occurredAt != nil {
		when = occurredAt.UTC()
	}

	return s.incomeRepo.Create(ctx, &domain.IncomeRecord{
		UserID:     userID,
		Amount:     amount,
		Source:     source,
		OccurredAt: when,
	})
}

// GetIncome retrieves the user's income records, newest first.
func (s *IncomeService) GetIncome(ctx context.Context, userID int64) ([]*domain.IncomeRecord, error) {
	return s.incomeRepo.GetAllByUser(ctx, userID, listLimit)
}

// DeleteIncome removes one of the user's income records.
func (s *IncomeService) DeleteIncome(ctx context.Context, userID, id int64) error {
	return s.incomeRepo.Delete(ctx, userID, id)
}
