package service

import (
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemTwiceBumpsQuantity(t *testing.T) {
	f := newFixture(t)

	msg, err := f.cart.AddItem(f.ctx, "alice", "shorts")
	require.NoError(t, err)
	assert.Equal(t, MsgItemAdded, msg)

	msg, err = f.cart.AddItem(f.ctx, "alice", "shorts")
	require.NoError(t, err)
	assert.Equal(t, MsgItemUpdated, msg)

	summary, err := f.cart.Summary(f.ctx, "alice")
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, 2, summary.Lines[0].Quantity)
	assert.EqualValues(t, 1, f.count(t, &model.OrderItem{}, "user_id = ?", "alice"))
}

func TestAddUnknownItem(t *testing.T) {
	f := newFixture(t)

	_, err := f.cart.AddItem(f.ctx, "alice", "nope")
	assert.True(t, IsKind(err, KindNotFound))
	assert.EqualError(t, err, MsgItemNotFound)
	assert.Zero(t, f.count(t, &model.Order{}, ""))
}

func TestSummaryTotal(t *testing.T) {
	f := newFixture(t)
	f.add(t, "alice", "shorts", 3)
	f.add(t, "alice", "coat", 1)

	summary, err := f.cart.Summary(f.ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "70.00", summary.Total)
	assert.Equal(t, "45.00", summary.Lines[0].FinalPrice)
	assert.Equal(t, "15.00", summary.Lines[0].AmountSaved)
}

func TestRemoveLastUnitDeletesOrder(t *testing.T) {
	for _, mode := range []RemoveMode{RemoveLine, RemoveOne} {
		f := newFixture(t)
		f.add(t, "alice", "shorts", 1)

		_, err := f.cart.RemoveItem(f.ctx, "alice", "shorts", mode)
		require.NoError(t, err)

		assert.Zero(t, f.count(t, &model.OrderItem{}, ""))
		assert.Zero(t, f.count(t, &model.Order{}, ""))

		_, err = f.cart.Summary(f.ctx, "alice")
		assert.True(t, IsKind(err, KindNotFound))
	}
}

func TestRemoveOneDecrements(t *testing.T) {
	f := newFixture(t)
	f.add(t, "alice", "shorts", 3)

	msg, err := f.cart.RemoveItem(f.ctx, "alice", "shorts", RemoveOne)
	require.NoError(t, err)
	assert.Equal(t, MsgItemUpdated, msg)

	summary, err := f.cart.Summary(f.ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Lines[0].Quantity)
}

func TestRemoveLineKeepsOtherLines(t *testing.T) {
	f := newFixture(t)
	f.add(t, "alice", "shorts", 3)
	f.add(t, "alice", "coat", 1)

	msg, err := f.cart.RemoveItem(f.ctx, "alice", "shorts", RemoveLine)
	require.NoError(t, err)
	assert.Equal(t, MsgItemRemoved, msg)

	summary, err := f.cart.Summary(f.ctx, "alice")
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, "coat", summary.Lines[0].Item.Slug)
}

func TestRemoveErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.cart.RemoveItem(f.ctx, "alice", "shorts", RemoveLine)
	assert.EqualError(t, err, MsgNoActiveOrder)

	f.add(t, "alice", "coat", 1)
	_, err = f.cart.RemoveItem(f.ctx, "alice", "shorts", RemoveOne)
	assert.True(t, IsKind(err, KindNotFound))
	assert.EqualError(t, err, MsgNotInCart)

	_, err = f.cart.RemoveItem(f.ctx, "alice", "nope", RemoveLine)
	assert.EqualError(t, err, MsgItemNotFound)
}

func TestOneActiveOrderPerUser(t *testing.T) {
	f := newFixture(t)

	steps := []struct {
		add  bool
		slug string
		mode RemoveMode
	}{
		{add: true, slug: "shorts"},
		{add: true, slug: "coat"},
		{add: false, slug: "shorts", mode: RemoveOne},
		{add: false, slug: "coat", mode: RemoveLine},
		{add: true, slug: "shirt"},
		{add: true, slug: "shirt"},
		{add: false, slug: "shirt", mode: RemoveOne},
		{add: true, slug: "coat"},
	}

	for _, step := range steps {
		var err error
		if step.add {
			_, err = f.cart.AddItem(f.ctx, "alice", step.slug)
		} else {
			_, err = f.cart.RemoveItem(f.ctx, "alice", step.slug, step.mode)
		}
		require.NoError(t, err)
		assert.LessOrEqual(t, f.count(t, &model.Order{}, "user_id = ? AND ordered = ?", "alice", false), int64(1))
	}

	// bob's cart is separate
	f.add(t, "bob", "coat", 1)
	assert.EqualValues(t, 1, f.count(t, &model.Order{}, "user_id = ? AND ordered = ?", "alice", false))
	assert.EqualValues(t, 1, f.count(t, &model.Order{}, "user_id = ? AND ordered = ?", "bob", false))
}
