package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// RecurringService handles recurring-template business logic
type RecurringService struct {
	recurringRepo domain.RecurringTemplateRepository
	categoryRepo  domain.CategoryRepository
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(recurringRepo domain.RecurringTemplateRepository, categoryRepo domain.CategoryRepository) *RecurringService {
	return &RecurringService{recurringRepo: recurringRepo, categoryRepo: categoryRepo}
}

// CreateTemplate stores a recurring expense template.
func (s *RecurringService) CreateTemplate(ctx context.Context, userID, categoryID int64, description string, amount decimal.Decimal) (*domain.RecurringTemplate, error) {
	description = strings.TrimSpace(description)
	if description == "" || len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrInvalidDescription
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.GetByID(ctx, userID, categoryID); err != nil {
		return nil, err
	}

	count, err := s.recurringRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxRecurringPerUser {
		return nil, domain.ErrRecurringLimit
	}

	return s.recurringRepo.Create(ctx, &domain.RecurringTemplate{
		UserID:      userID,
		CategoryID:  categoryID,
		Description: description,
		Amount:      amount,
	})
}

// GetTemplates retrieves the user's recurring templates.
func (s *RecurringService) GetTemplates(ctx context.Context, userID int64) ([]*domain.RecurringTemplate, error) {
	return s.recurringRepo.GetAllByUser(ctx, userID)
}

// DeleteTemplate removes one of the user's recurring templates.
func (s *RecurringService) DeleteTemplate(ctx context.Context, userID, id int64) error {
	return s.recurringRepo.Delete(ctx, userID, id)
}
