// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cursor implements the keyset pagination cursor used across the
media catalog's three paginated readers (fetch_by_source_ids,
fetch_by_tag_ids, fetch_all).

A Cursor pins a position in the `(created_at, id)` total order. Direction
controls whether a page scans forward or backward from that position; the
codec itself defines a strict total order independent of direction.
*/
package cursor

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Direction selects which way a keyset page scans relative to its
// since/until bounds.
type Direction int

const (
	// Ascending scans forward: output strictly increasing in (created_at, id).
	Ascending Direction = iota
	// Descending scans backward: output strictly decreasing in (created_at, id).
	Descending
)

// String implements [fmt.Stringer].
func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Cursor pins a position in the (created_at, id) total order.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Compare returns -1, 0, or 1 according to the strict total order
// (t1,i1) < (t2,i2) iff t1 < t2, or t1 == t2 and i1 < i2.
func Compare(a, b Cursor) int {
	switch {
	case a.CreatedAt.Before(b.CreatedAt):
		return -1
	case a.CreatedAt.After(b.CreatedAt):
		return 1
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// LessThan reports whether c strictly precedes other in the total order.
func (c Cursor) LessThan(other Cursor) bool {
	return Compare(c, other) < 0
}

// GreaterThan reports whether c strictly follows other in the total order.
func (c Cursor) GreaterThan(other Cursor) bool {
	return Compare(c, other) > 0
}

// Encode serializes the cursor as an opaque string. The wire format is an
// implementation detail; callers must treat it as opaque and round-trip
// it only through [Decode].
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%s|%s", c.CreatedAt.UTC().Format(time.RFC3339Nano), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a cursor string produced by [Cursor.Encode].
func Decode(s string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, fmt.Errorf("cursor: malformed encoding: %w", err)
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return Cursor{}, fmt.Errorf("cursor: malformed payload")
	}

	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("cursor: malformed timestamp: %w", err)
	}

	if parts[1] == "" {
		return Cursor{}, fmt.Errorf("cursor: missing id")
	}

	return Cursor{CreatedAt: ts, ID: parts[1]}, nil
}
