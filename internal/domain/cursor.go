package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Cursor is the resume point of a feed page: the ordering key of the last
// row handed out, plus the sort direction it was issued under. The encoded
// form is opaque to clients; they only ever echo back a token received in
// a nextCursor field.
type Cursor struct {
	Direction SortDirection `json:"d"`
	Timestamp time.Time     `json:"t"`
	TypeRank  int           `json:"k"`
	RowID     int64         `json:"id"`
}

// Key returns the cursor's position as an ordering key.
func (c Cursor) Key() FeedKey {
	return FeedKey{Timestamp: c.Timestamp, TypeRank: c.TypeRank, RowID: c.RowID}
}

// Precedes reports whether key sorts strictly after the cursor's position
// under the cursor's direction. A row whose key equals the cursor's must
// never reappear, so equality yields false.
func (c Cursor) Precedes(key FeedKey) bool {
	return c.Key().Compare(key, c.Direction) < 0
}

// EncodeCursor serializes a cursor into a URL-safe opaque token.
func EncodeCursor(c Cursor) string {
	// Marshaling a struct of these field types cannot fail.
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a token produced by EncodeCursor. Malformed,
// truncated or incomplete tokens yield ErrInvalidCursor. Direction
// consistency with the surrounding request is the caller's concern.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	if c.Direction != SortNewest && c.Direction != SortOldest {
		return Cursor{}, ErrInvalidCursor
	}
	if c.TypeRank != TypeRankIncome && c.TypeRank != TypeRankExpense {
		return Cursor{}, ErrInvalidCursor
	}
	if c.RowID <= 0 || c.Timestamp.IsZero() {
		return Cursor{}, ErrInvalidCursor
	}
	return c, nil
}
