package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// CategoryService handles spending-category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category after validating the name, the
// budget bucket and the per-user cap.
func (s *CategoryService) CreateCategory(ctx context.Context, userID int64, name, budgetType string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrInvalidCategoryName
	}

	bt, err := domain.ParseBudgetType(budgetType)
	if err != nil {
		return nil, err
	}

	count, err := s.categoryRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxCategoriesPerUser {
		return nil, domain.ErrCategoryLimit
	}

	return s.categoryRepo.Create(ctx, &domain.Category{
		UserID:     userID,
		Name:       name,
		BudgetType: bt,
	})
}

// GetCategories retrieves all of the user's categories.
func (s *CategoryService) GetCategories(ctx context.Context, userID int64) ([]*domain.Category, error) {
	return s.categoryRepo.GetAllByUser(ctx, userID)
}

// DeleteCategory removes a category. Deletion is refused while any expense
// references the category, before the foreign key could object, so the
// caller gets an explanation rather than a constraint failure.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	inUse, err := s.categoryRepo.HasExpenses(ctx, userID, id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, userID, id)
}
