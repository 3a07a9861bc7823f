package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliyevk1/bdgtweb/internal/database"
	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	db database.PGXDB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db database.PGXDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category. A name collision for the same user
// (case-insensitive) yields domain.ErrDuplicateCategory.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, budget_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, category.UserID, category.Name, category.BudgetType).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// GetByID retrieves one of the user's categories by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, budget_type, created_at
		FROM categories WHERE user_id = $1 AND id = $2
	`, userID, id).Scan(&c.ID, &c.UserID, &c.Name, &c.BudgetType, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// GetByName retrieves one of the user's categories by trimmed,
// case-insensitive name.
func (r *CategoryRepository) GetByName(ctx context.Context, userID int64, name string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, budget_type, created_at
		FROM categories WHERE user_id = $1 AND lower(name) = lower(btrim($2))
	`, userID, name).Scan(&c.ID, &c.UserID, &c.Name, &c.BudgetType, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return &c, nil
}

// GetAllByUser retrieves all of the user's categories, name order.
func (r *CategoryRepository) GetAllByUser(ctx context.Context, userID int64) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, budget_type, created_at
		FROM categories WHERE user_id = $1
		ORDER BY lower(name)
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.BudgetType, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

// CountByUser returns the number of categories the user has.
func (r *CategoryRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM categories WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// UpdateBudgetType moves one of the user's categories to another bucket.
func (r *CategoryRepository) UpdateBudgetType(ctx context.Context, userID, id int64, budgetType domain.BudgetType) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE categories SET budget_type = $3 WHERE user_id = $1 AND id = $2
	`, userID, id, budgetType)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// Delete removes one of the user's categories.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM categories WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// HasExpenses reports whether any expense references the category.
func (r *CategoryRepository) HasExpenses(ctx context.Context, userID, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM expenses WHERE user_id = $1 AND category_id = $2
		)
	`, userID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category usage: %w", err)
	}
	return exists, nil
}
