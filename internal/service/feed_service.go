package service

import (
	"context"
	"strings"
	"time"

	"github.com/aliyevk1/bdgtweb/internal/domain"
)

// FeedService produces the unified, cursor-paginated transaction stream.
// It owns every validation rule of the feed contract: limit clamping, sort
// normalization, cursor verification, filter compatibility and date-range
// sanity. The repository only executes the already-validated query.
type FeedService struct {
	feedRepo domain.FeedRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(feedRepo domain.FeedRepository) *FeedService {
	return &FeedService{feedRepo: feedRepo}
}

// FeedRequest carries a page request as received from the caller. Sort and
// Cursor are raw strings; everything else has been parsed by the transport
// layer.
type FeedRequest struct {
	Limit         int
	Sort          string
	Cursor        string
	Type          *domain.TransactionType
	CategoryID    *int64
	Uncategorized bool
	From          *time.Time
	To            *time.Time
}

// ParseSortDirection normalizes a raw sort value. Anything other than
// "oldest" (case-insensitive) means newest-first.
func ParseSortDirection(raw string) domain.SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(domain.SortOldest)) {
		return domain.SortOldest
	}
	return domain.SortNewest
}

// clampLimit forces the page size into [1, MaxFeedLimit]; zero means the
// default. Out-of-range values are clamped, never rejected.
func clampLimit(limit int) int {
	if limit == 0 {
		return domain.DefaultFeedLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > domain.MaxFeedLimit {
		return domain.MaxFeedLimit
	}
	return limit
}

// GetPage returns one page of the user's merged transaction stream.
//
// The page is fetched with one lookahead row: when limit+1 rows come back,
// the last returned row's ordering key is encoded as the next cursor and
// the lookahead row is dropped. Resumption is exclusive of the cursor's
// key, so the lookahead row is the first row of the following page.
func (s *FeedService) GetPage(ctx context.Context, userID int64, req *FeedRequest) (*domain.FeedPage, error) {
	sort := ParseSortDirection(req.Sort)
	limit := clampLimit(req.Limit)

	if (req.CategoryID != nil || req.Uncategorized) &&
		req.Type != nil && *req.Type == domain.TransactionTypeIncome {
		return nil, domain.ErrIncompatibleFilters
	}
	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return nil, domain.ErrInvalidRange
	}

	var cursor *domain.Cursor
	if req.Cursor != "" {
		decoded, err := domain.DecodeCursor(req.Cursor)
		if err != nil {
			return nil, err
		}
		// A cursor issued under the other sort order resumes at a
		// meaningless position; treat it like any other bad token.
		if decoded.Direction != sort {
			return nil, domain.ErrInvalidCursor
		}
		cursor = &decoded
	}

	q := &domain.FeedQuery{
		Limit:  limit + 1,
		Sort:   sort,
		Cursor: cursor,
		Filters: domain.FeedFilters{
			Type:          req.Type,
			CategoryID:    req.CategoryID,
			Uncategorized: req.Uncategorized,
			From:          req.From,
			To:            req.To,
		},
	}

	items, err := s.feedRepo.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	page := &domain.FeedPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		token := domain.EncodeCursor(domain.Cursor{
			Direction: sort,
			Timestamp: last.Timestamp,
			TypeRank:  last.TypeRank,
			RowID:     last.ID,
		})
		page.NextCursor = &token
	}
	return page, nil
}
