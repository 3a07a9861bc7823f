package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Type ranks order income before expense on exact timestamp ties. The two
// source tables have independent id sequences, so ids are only comparable
// after timestamp and rank agree.
const (
	TypeRankIncome  = 0
	TypeRankExpense = 1
)

type SortDirection string

const (
	SortNewest SortDirection = "newest"
	SortOldest SortDirection = "oldest"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50
)

// FeedKey is the composite ordering key of a feed row: (timestamp,
// typeRank, rowId) totally orders the union of income and expense rows.
type FeedKey struct {
	Timestamp time.Time
	TypeRank  int
	RowID     int64
}

// Compare orders two keys under the given sort direction. It returns a
// negative value when a sorts before b, zero when the keys are equal.
// The typeRank tie-break is ascending under both directions; timestamp and
// rowId flip with the direction.
func (a FeedKey) Compare(b FeedKey, dir SortDirection) int {
	if !a.Timestamp.Equal(b.Timestamp) {
		if dir == SortOldest {
			if a.Timestamp.Before(b.Timestamp) {
				return -1
			}
			return 1
		}
		if a.Timestamp.After(b.Timestamp) {
			return -1
		}
		return 1
	}
	if a.TypeRank != b.TypeRank {
		if a.TypeRank < b.TypeRank {
			return -1
		}
		return 1
	}
	if a.RowID == b.RowID {
		return 0
	}
	if dir == SortOldest {
		if a.RowID < b.RowID {
			return -1
		}
		return 1
	}
	if a.RowID > b.RowID {
		return -1
	}
	return 1
}

// FeedItem is one row of the merged transaction stream: either an income
// record (Source set) or an expense record (Description and category
// fields set). The category fields are hydrated from the expense's
// category when one is assigned.
type FeedItem struct {
	ID                 int64
	TypeRank           int
	Amount             decimal.Decimal
	Timestamp          time.Time
	Source             *string
	Description        *string
	CategoryID         *int64
	CategoryName       *string
	CategoryBudgetType *BudgetType
}

func (it *FeedItem) Type() TransactionType {
	if it.TypeRank == TypeRankIncome {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}

func (it *FeedItem) Key() FeedKey {
	return FeedKey{Timestamp: it.Timestamp, TypeRank: it.TypeRank, RowID: it.ID}
}

// FeedFilters narrows the stream. All filters are conjunctive. CategoryID
// and Uncategorized are mutually exclusive and only valid when Type is
// absent or expense.
type FeedFilters struct {
	Type          *TransactionType
	CategoryID    *int64
	Uncategorized bool
	From          *time.Time
	To            *time.Time
}

// FeedQuery is a single page request against the merged stream. Limit is
// the number of rows to fetch (the caller adds its lookahead row before
// handing the query to the repository).
type FeedQuery struct {
	Limit   int
	Sort    SortDirection
	Cursor  *Cursor
	Filters FeedFilters
}

// FeedPage is one page of the stream. NextCursor is nil on the last page.
type FeedPage struct {
	Items      []*FeedItem
	NextCursor *string
}

type FeedRepository interface {
	List(ctx context.Context, userID int64, q *FeedQuery) ([]*FeedItem, error)
}
