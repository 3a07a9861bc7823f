package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/aliyevk1/bdgtweb/internal/database"
	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// FeedRepository reads the merged income+expense stream using PostgreSQL.
// The two tables are combined with UNION ALL under a shared
// (ts, type_rank, id) ordering key, and pages resume with a keyset
// predicate on that key rather than an offset.
type FeedRepository struct {
	db database.PGXDB
}

// NewFeedRepository creates a new FeedRepository
func NewFeedRepository(db database.PGXDB) *FeedRepository {
	return &FeedRepository{db: db}
}

// List fetches up to q.Limit rows matching the query's filters, starting
// strictly after the cursor's position when one is set. The caller is
// expected to have validated the query (see service.FeedService).
func (r *FeedRepository) List(ctx context.Context, userID int64, q *domain.FeedQuery) ([]*domain.FeedItem, error) {
	args := []any{userID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	f := q.Filters

	var timeBounds []string
	if f.From != nil {
		timeBounds = append(timeBounds, "ts >= "+arg(*f.From))
	}
	if f.To != nil {
		timeBounds = append(timeBounds, "ts <= "+arg(*f.To))
	}

	var branches []string
	if f.Type == nil || *f.Type == domain.TransactionTypeIncome {
		branches = append(branches, `
			SELECT i.id, 0 AS type_rank, i.amount, i.occurred_at AS ts,
			       i.source, NULL::text AS description,
			       NULL::bigint AS category_id, NULL::text AS category_name,
			       NULL::text AS category_budget_type
			FROM income i
			WHERE i.user_id = $1`)
	}
	if f.Type == nil || *f.Type == domain.TransactionTypeExpense {
		expense := `
			SELECT e.id, 1 AS type_rank, e.amount, e.spent_at AS ts,
			       NULL::text AS source, e.description,
			       e.category_id, c.name AS category_name,
			       c.budget_type AS category_budget_type
			FROM expenses e
			LEFT JOIN categories c ON c.id = e.category_id
			WHERE e.user_id = $1`
		if f.Uncategorized {
			expense += " AND e.category_id IS NULL"
		} else if f.CategoryID != nil {
			expense += " AND e.category_id = " + arg(*f.CategoryID)
		}
		branches = append(branches, expense)
	}

	where := append([]string(nil), timeBounds...)
	if q.Cursor != nil {
		where = append(where, cursorPredicate(q.Sort, arg(q.Cursor.Timestamp), arg(q.Cursor.TypeRank), arg(q.Cursor.RowID)))
	}

	query := "SELECT id, type_rank, amount, ts, source, description, category_id, category_name, category_budget_type FROM (" +
		strings.Join(branches, "\n\t\t\tUNION ALL\n") + "\n\t\t) t"
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY " + orderClause(q.Sort)
	query += "\n\t\tLIMIT " + arg(q.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction feed: %w", err)
	}
	defer rows.Close()

	var items []*domain.FeedItem
	for rows.Next() {
		var it domain.FeedItem
		var budgetType *string
		if err := rows.Scan(&it.ID, &it.TypeRank, &it.Amount, &it.Timestamp,
			&it.Source, &it.Description, &it.CategoryID, &it.CategoryName, &budgetType); err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		if budgetType != nil {
			bt := domain.BudgetType(*budgetType)
			it.CategoryBudgetType = &bt
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction feed: %w", err)
	}
	return items, nil
}

// cursorPredicate renders the exclusive resume condition. The type_rank
// tie-break stays ascending under both directions; the timestamp and id
// comparisons flip with the sort.
func cursorPredicate(sort domain.SortDirection, ts, rank, id string) string {
	tsCmp, idCmp := "<", "<"
	if sort == domain.SortOldest {
		tsCmp, idCmp = ">", ">"
	}
	return fmt.Sprintf(
		"(ts %s %s OR (ts = %s AND (type_rank > %s OR (type_rank = %s AND id %s %s))))",
		tsCmp, ts, ts, rank, rank, idCmp, id)
}

func orderClause(sort domain.SortDirection) string {
	if sort == domain.SortOldest {
		return "ts ASC, type_rank ASC, id ASC"
	}
	return "ts DESC, type_rank ASC, id DESC"
}
