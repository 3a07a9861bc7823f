package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/aliyevk1/bdgtweb/internal/database"
	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	db database.PGXDB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db database.PGXDB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts a new expense record.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.ExpenseRecord) (*domain.ExpenseRecord, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (user_id, amount, description, category_id, spent_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, expense.UserID, expense.Amount, expense.Description, expense.CategoryID, expense.SpentAt).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// GetByID retrieves one of the user's expense records by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, userID, id int64) (*domain.ExpenseRecord, error) {
	var ex domain.ExpenseRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, amount, description, category_id, spent_at, created_at
		FROM expenses WHERE user_id = $1 AND id = $2
	`, userID, id).Scan(&ex.ID, &ex.UserID, &ex.Amount, &ex.Description, &ex.CategoryID, &ex.SpentAt, &ex.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &ex, nil
}

// GetAllByUser retrieves the user's expense records, newest first.
func (r *ExpenseRepository) GetAllByUser(ctx context.Context, userID int64, limit int) ([]*domain.ExpenseRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount, description, category_id, spent_at, created_at
		FROM expenses WHERE user_id = $1
		ORDER BY spent_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var records []*domain.ExpenseRecord
	for rows.Next() {
		var ex domain.ExpenseRecord
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Amount, &ex.Description, &ex.CategoryID, &ex.SpentAt, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		records = append(records, &ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	return records, nil
}

// Delete removes one of the user's expense records.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM expenses WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// SumByDateRange totals all expenses with spent_at in [start, end).
func (r *ExpenseRepository) SumByDateRange(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1 AND spent_at >= $2 AND spent_at < $3
	`, userID, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

// SumByBucket totals categorized expenses with spent_at in [start, end),
// grouped by budget bucket.
func (r *ExpenseRepository) SumByBucket(ctx context.Context, userID int64, start, end time.Time) (map[domain.BudgetType]decimal.Decimal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.budget_type, SUM(e.amount)
		FROM expenses e
		JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.spent_at >= $2 AND e.spent_at < $3
		GROUP BY c.budget_type
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses by bucket: %w", err)
	}
	defer rows.Close()

	totals := make(map[domain.BudgetType]decimal.Decimal)
	for rows.Next() {
		var bucket domain.BudgetType
		var total decimal.Decimal
		if err := rows.Scan(&bucket, &total); err != nil {
			return nil, fmt.Errorf("failed to scan bucket total: %w", err)
		}
		totals[bucket] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bucket totals: %w", err)
	}
	return totals, nil
}
