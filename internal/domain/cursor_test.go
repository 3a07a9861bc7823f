package domain

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func TestCursor_EncodeDecodeRoundTrip(t *testing.T) {
	original := Cursor{
		Direction: SortNewest,
		Timestamp: time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		TypeRank:  TypeRankExpense,
		RowID:     42,
	}

	token := EncodeCursor(original)

	decoded, err := DecodeCursor(token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if decoded.Direction != original.Direction {
		t.Errorf("Expected direction %s, got %s", original.Direction, decoded.Direction)
	}
	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Expected timestamp %v, got %v", original.Timestamp, decoded.Timestamp)
	}
	if decoded.TypeRank != original.TypeRank {
		t.Errorf("Expected type rank %d, got %d", original.TypeRank, decoded.TypeRank)
	}
	if decoded.RowID != original.RowID {
		t.Errorf("Expected row id %d, got %d", original.RowID, decoded.RowID)
	}
}

func TestCursor_TokenIsURLSafe(t *testing.T) {
	token := EncodeCursor(Cursor{
		Direction: SortOldest,
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		TypeRank:  TypeRankIncome,
		RowID:     1,
	})

	if _, err := base64.RawURLEncoding.DecodeString(token); err != nil {
		t.Errorf("Expected URL-safe base64 token, got %q: %v", token, err)
	}
}

func TestDecodeCursor_RejectsMalformedTokens(t *testing.T) {
	valid := Cursor{
		Direction: SortNewest,
		Timestamp: time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		TypeRank:  TypeRankIncome,
		RowID:     7,
	}

	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{"empty object", base64.RawURLEncoding.EncodeToString([]byte("{}"))},
		{"unknown direction", encodeMutated(valid, func(c *Cursor) { c.Direction = "sideways" })},
		{"invalid type rank", encodeMutated(valid, func(c *Cursor) { c.TypeRank = 2 })},
		{"zero row id", encodeMutated(valid, func(c *Cursor) { c.RowID = 0 })},
		{"negative row id", encodeMutated(valid, func(c *Cursor) { c.RowID = -5 })},
		{"zero timestamp", encodeMutated(valid, func(c *Cursor) { c.Timestamp = time.Time{} })},
		{"truncated", EncodeCursor(valid)[:8]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCursor(tt.token); !errors.Is(err, ErrInvalidCursor) {
				t.Errorf("Expected ErrInvalidCursor, got %v", err)
			}
		})
	}
}

func encodeMutated(c Cursor, mutate func(*Cursor)) string {
	mutate(&c)
	return EncodeCursor(c)
}

func TestCursor_PrecedesExcludesOwnPosition(t *testing.T) {
	ts := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	cursor := Cursor{Direction: SortNewest, Timestamp: ts, TypeRank: TypeRankIncome, RowID: 10}

	if cursor.Precedes(cursor.Key()) {
		t.Error("Expected the cursor's own key to be excluded from the next page")
	}

	// Newest-first: an expense at the same instant sorts after income.
	after := FeedKey{Timestamp: ts, TypeRank: TypeRankExpense, RowID: 10}
	if !cursor.Precedes(after) {
		t.Error("Expected a same-instant expense to follow an income cursor")
	}

	// Newest-first: a later timestamp sorts before the cursor.
	before := FeedKey{Timestamp: ts.Add(time.Hour), TypeRank: TypeRankIncome, RowID: 11}
	if cursor.Precedes(before) {
		t.Error("Expected a newer row to precede the cursor under newest-first")
	}
}
