package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMergeItem_SamePairMergesIntoSingleLine(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}

	first := cart.MergeItem("item1", "1", strPtr("Navy"), 1, now)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Quantity)

	second := cart.MergeItem("item2", "1", strPtr("Navy"), 2, now)
	require.NotNil(t, second)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	// the original line survives, the second id is never used
	assert.Equal(t, "item1", cart.Items[0].ID)
}

func TestMergeItem_DifferentColorsProduceDistinctLines(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}

	cart.MergeItem("item1", "1", strPtr("Navy"), 1, now)
	cart.MergeItem("item2", "1", strPtr("Black"), 1, now)
	cart.MergeItem("item3", "1", nil, 1, now)

	assert.Len(t, cart.Items, 3)
}

func TestMergeItem_NilColorMergesWithNilColor(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}

	cart.MergeItem("item1", "2", nil, 1, now)
	cart.MergeItem("item2", "2", nil, 4, now)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestSetQuantity_MissingIDLeavesCartUnchanged(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}
	cart.MergeItem("item1", "1", nil, 2, now)

	item := cart.SetQuantity("missing", 7)

	assert.Nil(t, item)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestSetQuantity_OverwritesQuantity(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}
	cart.MergeItem("item1", "1", nil, 2, now)

	item := cart.SetQuantity("item1", 7)

	require.NotNil(t, item)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestDropItem_AbsentIDIsNoOp(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}
	cart.MergeItem("item1", "1", nil, 2, now)

	cart.DropItem("missing")

	assert.Len(t, cart.Items, 1)
}

func TestDropItem_RemovesLine(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}
	cart.MergeItem("item1", "1", strPtr("Navy"), 1, now)
	cart.MergeItem("item2", "2", nil, 1, now)

	cart.DropItem("item1")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "item2", cart.Items[0].ID)
}

func TestClone_DetachedFromSource(t *testing.T) {
	now := time.Now()
	cart := &Cart{ID: "cart1"}
	cart.MergeItem("item1", "1", strPtr("Navy"), 1, now)

	snapshot := cart.Clone()

	cart.MergeItem("item1", "1", strPtr("Navy"), 5, now)
	cart.Items[0].ProductID = "changed"
	*cart.Items[0].Color = "Red"

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "1", snapshot.Items[0].ProductID)
	assert.Equal(t, 1, snapshot.Items[0].Quantity)
	assert.Equal(t, "Navy", *snapshot.Items[0].Color)
}
