// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

/*
TestBuildAncestorChain_BoundedDepth verifies that the ancestor chain is
exactly as deep as its (depth-bounded) edge set, linked in increasing
distance, and that the top ancestor in the chain has a nil Parent.
*/
func TestBuildAncestorChain_BoundedDepth(t *testing.T) {
	records := map[string]record{
		"parent-1": {Tag: Tag{ID: "parent-1", Name: "outfit"}},
		"parent-2": {Tag: Tag{ID: "parent-2", Name: "clothes"}},
		"parent-3": {Tag: Tag{ID: "parent-3", Name: "everything"}},
	}
	edges := []edge{
		{RootID: "leaf", ID: "parent-1", Distance: 1},
		{RootID: "leaf", ID: "parent-2", Distance: 2},
		{RootID: "leaf", ID: "parent-3", Distance: 3},
	}

	chain := buildAncestorChain(edges, records)

	assert.Equal(t, "parent-1", chain.ID)
	assert.Equal(t, "parent-2", chain.Parent.ID)
	assert.Equal(t, "parent-3", chain.Parent.Parent.ID)
	assert.Nil(t, chain.Parent.Parent.Parent)
}

/*
TestBuildAncestorChain_OrphanParent verifies that a parent edge whose
target row was never fetched (an orphan parent_id) truncates the chain
rather than erroring.
*/
func TestBuildAncestorChain_OrphanParent(t *testing.T) {
	records := map[string]record{
		"parent-1": {Tag: Tag{ID: "parent-1"}},
		// parent-2's row does not exist in records (orphan / deleted row).
	}
	edges := []edge{
		{RootID: "leaf", ID: "parent-1", Distance: 1},
		{RootID: "leaf", ID: "parent-2", Distance: 2},
	}

	chain := buildAncestorChain(edges, records)

	assert.Equal(t, "parent-1", chain.ID)
	assert.Nil(t, chain.Parent)
}

/*
TestBuildDescendantChildren_SortedAndBounded verifies children are
sorted by (kana, name, id) ascending at every level and that expansion
stops at maxDepth.
*/
func TestBuildDescendantChildren_SortedAndBounded(t *testing.T) {
	records := map[string]record{
		"root":  {Tag: Tag{ID: "root"}},
		"child-b": {Tag: Tag{ID: "child-b", Kana: "ii", Name: "second"}},
		"child-a": {Tag: Tag{ID: "child-a", Kana: "aa", Name: "first"}},
		"grand":   {Tag: Tag{ID: "grand", Kana: "zz", Name: "grand"}},
	}
	childrenOf := map[string][]string{
		"root":    {"child-b", "child-a"},
		"child-a": {"grand"},
	}
	allowed := map[string]int{"child-a": 1, "child-b": 1, "grand": 2}

	children := buildDescendantChildren("root", 0, 1, childrenOf, allowed, records)

	assert.Len(t, children, 2)
	assert.Equal(t, "child-a", children[0].ID, "kana 'aa' sorts before 'ii'")
	assert.Equal(t, "child-b", children[1].ID)
	assert.Empty(t, children[0].Children, "depth 1 must not expand grandchildren")
}

/*
TestDedup verifies duplicate input ids are collapsed while preserving
first-seen order.
*/
func TestDedup(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedup([]string{"a", "b", "a", "c", "b"}))
}

func TestSortTags(t *testing.T) {
	now := time.Now()
	tags := []Descendant{
		{Tag: Tag{ID: "2", Kana: "aa", Name: "b", CreatedAt: now}},
		{Tag: Tag{ID: "1", Kana: "aa", Name: "b", CreatedAt: now}},
		{Tag: Tag{ID: "3", Kana: "zz", Name: "a", CreatedAt: now}},
	}

	sortTags(tags)

	assert.Equal(t, []string{"1", "2", "3"}, []string{tags[0].ID, tags[1].ID, tags[2].ID})
}
