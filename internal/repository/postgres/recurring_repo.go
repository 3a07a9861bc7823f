package postgres

import (
	"context"
	"fmt"

	"github.com/aliyevk1/bdgtweb/internal/database"
	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// RecurringTemplateRepository implements domain.RecurringTemplateRepository
// using PostgreSQL
type RecurringTemplateRepository struct {
	db database.PGXDB
}

// NewRecurringTemplateRepository creates a new RecurringTemplateRepository
func NewRecurringTemplateRepository(db database.PGXDB) *RecurringTemplateRepository {
	return &RecurringTemplateRepository{db: db}
}

// Create inserts a new recurring template.
func (r *RecurringTemplateRepository) Create(ctx context.Context, template *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO recurring_templates (user_id, category_id, description, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, template.UserID, template.CategoryID, template.Description, template.Amount).Scan(&template.ID, &template.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring template: %w", err)
	}
	return template, nil
}

// GetAllByUser retrieves the user's recurring templates, description order.
func (r *RecurringTemplateRepository) GetAllByUser(ctx context.Context, userID int64) ([]*domain.RecurringTemplate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, category_id, description, amount, created_at
		FROM recurring_templates WHERE user_id = $1
		ORDER BY lower(description), id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.RecurringTemplate
	for rows.Next() {
		var t domain.RecurringTemplate
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Description, &t.Amount, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring template: %w", err)
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recurring templates: %w", err)
	}
	return templates, nil
}

// CountByUser returns the number of recurring templates the user has.
func (r *RecurringTemplateRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM recurring_templates WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recurring templates: %w", err)
	}
	return count, nil
}

// Delete removes one of the user's recurring templates.
func (r *RecurringTemplateRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM recurring_templates WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete recurring template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecurringNotFound
	}
	return nil
}

// Exists reports whether the user already has a template with this
// category and description.
func (r *RecurringTemplateRepository) Exists(ctx context.Context, userID, categoryID int64, description string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM recurring_templates
			WHERE user_id = $1 AND category_id = $2 AND lower(description) = lower(btrim($3))
		)
	`, userID, categoryID, description).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recurring template: %w", err)
	}
	return exists, nil
}
