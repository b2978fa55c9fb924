// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package replica

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestIsPermutation_Valid verifies a reordering of the same id set is
accepted regardless of order.
*/
func TestIsPermutation_Valid(t *testing.T) {
	current := []string{"r1", "r2", "r3"}
	candidate := []string{"r2", "r3", "r1"}

	assert.True(t, isPermutation(current, candidate))
}

/*
TestIsPermutation_WrongCardinality verifies S7: a candidate of the wrong
length is rejected.
*/
func TestIsPermutation_WrongCardinality(t *testing.T) {
	current := []string{"r1", "r2", "r3"}

	assert.False(t, isPermutation(current, []string{"r1", "r2"}))
	assert.False(t, isPermutation(current, []string{"r1", "r2", "r3", "r4"}))
}

/*
TestIsPermutation_ForeignID verifies a candidate containing an id
outside the current set is rejected even with matching cardinality.
*/
func TestIsPermutation_ForeignID(t *testing.T) {
	current := []string{"r1", "r2", "r3"}
	candidate := []string{"r1", "r2", "r4"}

	assert.False(t, isPermutation(current, candidate))
}

/*
TestIsPermutation_Duplicate verifies a candidate with a duplicated id
(and therefore a missing one) is rejected.
*/
func TestIsPermutation_Duplicate(t *testing.T) {
	current := []string{"r1", "r2", "r3"}
	candidate := []string{"r1", "r1", "r3"}

	assert.False(t, isPermutation(current, candidate))
}
