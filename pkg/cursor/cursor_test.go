// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cursor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hoarder/pkg/cursor"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts
}

/*
TestCompare exercises the strict total order over (created_at, id).
*/
func TestCompare(t *testing.T) {
	earlier := cursor.Cursor{CreatedAt: mustTime(t, "2026-01-01T00:00:00Z"), ID: "b"}
	later := cursor.Cursor{CreatedAt: mustTime(t, "2026-01-02T00:00:00Z"), ID: "a"}
	sameTimeLowerID := cursor.Cursor{CreatedAt: earlier.CreatedAt, ID: "a"}
	sameTimeHigherID := cursor.Cursor{CreatedAt: earlier.CreatedAt, ID: "c"}

	tests := []struct {
		name string
		a, b cursor.Cursor
		want int
	}{
		{"earlier_timestamp_wins", earlier, later, -1},
		{"later_timestamp_loses_to_earlier", later, earlier, 1},
		{"tie_broken_by_id_ascending", sameTimeLowerID, earlier, -1},
		{"tie_broken_by_id_descending", sameTimeHigherID, earlier, 1},
		{"equal", earlier, earlier, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cursor.Compare(tt.a, tt.b))
		})
	}
}

/*
TestEncodeDecode_RoundTrip verifies the opaque wire format round-trips
exactly through Encode/Decode.
*/
func TestEncodeDecode_RoundTrip(t *testing.T) {
	original := cursor.Cursor{
		CreatedAt: mustTime(t, "2026-03-14T09:26:53.589793Z"),
		ID:        "0191a1b2-0c3d-7e4f-8a5b-6c7d8e9f0a1b",
	}

	encoded := original.Encode()
	decoded, err := cursor.Decode(encoded)
	require.NoError(t, err)

	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, 0, cursor.Compare(original, decoded))
}

/*
TestDecode_Malformed verifies that malformed input is rejected rather
than silently accepted.
*/
func TestDecode_Malformed(t *testing.T) {
	tests := []string{
		"not-valid-base64!!!",
		"",
	}

	for _, in := range tests {
		_, err := cursor.Decode(in)
		assert.Error(t, err)
	}
}
