package postgres

import (
	"context"
	"fmt"

	"github.com/aliyevk1/bdgtweb/internal/database"
	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// Store implements domain.AtomicStore over a pgx connection pool.
type Store struct {
	pool database.TxBeginner
}

// NewStore creates a new Store
func NewStore(pool database.TxBeginner) *Store {
	return &Store{pool: pool}
}

// WithinTx runs fn inside one database transaction. The repositories
// handed to fn are bound to that transaction; any error rolls everything
// back.
func (s *Store) WithinTx(ctx context.Context, fn func(repos domain.TemplateRepos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	repos := domain.TemplateRepos{
		Categories: NewCategoryRepository(tx),
		Recurring:  NewRecurringTemplateRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
