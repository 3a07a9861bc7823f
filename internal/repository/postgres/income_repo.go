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

// IncomeRepository implements domain.IncomeRepository using PostgreSQL
type IncomeRepository struct {
	db database.PGXDB
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(db database.PGXDB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// Create inserts a new income record.
func (r *IncomeRepository) Create(ctx context.Context, income *domain.IncomeRecord) (*domain.IncomeRecord, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO income (user_id, amount, source, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, income.UserID, income.Amount, income.Source, income.OccurredAt).Scan(&income.ID, &income.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return income, nil
}

// GetByID retrieves one of the user's income records by ID.
func (r *IncomeRepository) GetByID(ctx context.Context, userID, id int64) (*domain.IncomeRecord, error) {
	var in domain.IncomeRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, amount, source, occurred_at, created_at
		FROM income WHERE user_id = $1 AND id = $2
	`, userID, id).Scan(&in.ID, &in.UserID, &in.Amount, &in.Source, &in.OccurredAt, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIncomeNotFound
		}
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return &in, nil
}

// GetAllByUser retrieves the user's income records, newest first.
func (r *IncomeRepository) GetAllByUser(ctx context.Context, userID int64, limit int) ([]*domain.IncomeRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount, source, occurred_at, created_at
		FROM income WHERE user_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}
	defer rows.Close()

	var records []*domain.IncomeRecord
	for rows.Next() {
		var in domain.IncomeRecord
		if err := rows.Scan(&in.ID, &in.UserID, &in.Amount, &in.Source, &in.OccurredAt, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		records = append(records, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read income: %w", err)
	}
	return records, nil
}

// Delete removes one of the user's income records.
func (r *IncomeRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM income WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIncomeNotFound
	}
	return nil
}

// SumByDateRange totals income with occurred_at in [start, end).
func (r *IncomeRepository) SumByDateRange(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM income
		WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3
	`, userID, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income: %w", err)
	}
	return total, nil
}
