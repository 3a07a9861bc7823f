package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aliyevk1/bdgtweb/internal/domain"
	"github.com/aliyevk1/bdgtweb/internal/testutil"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(context.Background(), 1, "Groceries", "necessities")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Groceries" {
		t.Errorf("Expected name 'Groceries', got %s", category.Name)
	}
	if category.BudgetType != domain.BudgetTypeNecessities {
		t.Errorf("Expected budget type 'necessities', got %s", category.BudgetType)
	}
}

func TestCreateCategory_TrimsNameAndNormalizesBudgetType(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(context.Background(), 1, "  Dining Out  ", "LEISURE")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Dining Out" {
		t.Errorf("Expected trimmed name 'Dining Out', got %q", category.Name)
	}
	if category.BudgetType != domain.BudgetTypeLeisure {
		t.Errorf("Expected budget type 'leisure', got %s", category.BudgetType)
	}
}

func TestCreateCategory_InvalidName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	if _, err := categoryService.CreateCategory(context.Background(), 1, "   ", "savings"); !errors.Is(err, domain.ErrInvalidCategoryName) {
		t.Errorf("Expected ErrInvalidCategoryName for blank name, got %v", err)
	}

	long := strings.Repeat("x", domain.MaxCategoryNameLength+1)
	if _, err := categoryService.CreateCategory(context.Background(), 1, long, "savings"); !errors.Is(err, domain.ErrInvalidCategoryName) {
		t.Errorf("Expected ErrInvalidCategoryName for long name, got %v", err)
	}
}

func TestCreateCategory_InvalidBudgetType(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	if _, err := categoryService.CreateCategory(context.Background(), 1, "Groceries", "luxuries"); !errors.Is(err, domain.ErrInvalidBudgetType) {
		t.Errorf("Expected ErrInvalidBudgetType, got %v", err)
	}
}

func TestCreateCategory_DuplicateNameCaseInsensitive(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	if _, err := categoryService.CreateCategory(context.Background(), 1, "Groceries", "necessities"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := categoryService.CreateCategory(context.Background(), 1, "GROCERIES", "savings"); !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Errorf("Expected ErrDuplicateCategory, got %v", err)
	}
}

func TestCreateCategory_PerUserCap(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	for i := 0; i < domain.MaxCategoriesPerUser; i++ {
		if _, err := categoryService.CreateCategory(context.Background(), 1, fmt.Sprintf("Category %d", i), "savings"); err != nil {
			t.Fatalf("Expected no error at %d, got %v", i, err)
		}
	}

	if _, err := categoryService.CreateCategory(context.Background(), 1, "One Too Many", "savings"); !errors.Is(err, domain.ErrCategoryLimit) {
		t.Errorf("Expected ErrCategoryLimit, got %v", err)
	}

	// The cap is per user, not global.
	if _, err := categoryService.CreateCategory(context.Background(), 2, "Groceries", "savings"); err != nil {
		t.Errorf("Expected no error for a different user, got %v", err)
	}
}

func TestDeleteCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(context.Background(), 1, "Groceries", "necessities")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := categoryService.DeleteCategory(context.Background(), 1, category.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := categoryRepo.GetByID(context.Background(), 1, category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected category to be gone, got %v", err)
	}
}

func TestDeleteCategory_BlockedWhileExpensesReference(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.HasExpensesFn = func(userID, id int64) (bool, error) { return true, nil }
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(context.Background(), 1, "Groceries", "necessities")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := categoryService.DeleteCategory(context.Background(), 1, category.ID); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Errorf("Expected ErrCategoryInUse, got %v", err)
	}
}

func TestDeleteCategory_OtherUsersCategoryNotFound(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(context.Background(), 1, "Groceries", "necessities")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := categoryService.DeleteCategory(context.Background(), 2, category.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}
