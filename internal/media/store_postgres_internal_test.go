// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hoarder/internal/tag"
)

func TestDedupStrings(t *testing.T) {
	got := dedupStrings([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestDedupStrings_Empty(t *testing.T) {
	assert.Nil(t, dedupStrings(nil))
}

func TestDedupPairs(t *testing.T) {
	in := []TagPair{
		{TagID: "t1", TagTypeID: "y1"},
		{TagID: "t2", TagTypeID: "y1"},
		{TagID: "t1", TagTypeID: "y1"},
	}
	got := dedupPairs(in)
	assert.Equal(t, []TagPair{{TagID: "t1", TagTypeID: "y1"}, {TagID: "t2", TagTypeID: "y1"}}, got)
}

func TestDedupPairs_SamePreservedAcrossTagType(t *testing.T) {
	in := []TagPair{
		{TagID: "t1", TagTypeID: "y1"},
		{TagID: "t1", TagTypeID: "y2"},
	}
	assert.Equal(t, in, dedupPairs(in))
}

/*
TestSortMaterialized_CanonicalOrder verifies §8 property 5: tags within
a group sort by (kana, name, id).
*/
func TestSortMaterialized_CanonicalOrder(t *testing.T) {
	tags := []tag.Materialized{
		{Tag: tag.Tag{ID: "c", Kana: "ka", Name: "charlie"}},
		{Tag: tag.Tag{ID: "a", Kana: "aa", Name: "alpha"}},
		{Tag: tag.Tag{ID: "b", Kana: "aa", Name: "beta"}},
	}
	sortMaterialized(tags)

	assert.Equal(t, []string{"a", "b", "c"}, []string{tags[0].ID, tags[1].ID, tags[2].ID})
}

/*
TestNowAfter_AdvancesWhenClockIsBehind verifies update_by_id's
requirement that updated_at always differs from its prior value, even
when the wall clock has not visibly advanced.
*/
func TestNowAfter_AdvancesWhenClockIsBehind(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)

	got := nowAfter(future)

	assert.True(t, got.After(future))
}

func TestNowAfter_UsesNowWhenAhead(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)

	got := nowAfter(past)

	assert.True(t, got.After(past))
	assert.WithinDuration(t, time.Now().UTC(), got, time.Second)
}
