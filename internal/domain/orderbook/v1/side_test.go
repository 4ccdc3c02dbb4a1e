package orderbookv1

import (
	"testing"

	orderv1 "github.com/muhammadchandra19/securities-exchange/internal/domain/order/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, side orderv1.Side, price, qty float64) *orderv1.Order {
	t.Helper()
	order, err := orderv1.NewOrder("BTC-USD", side, orderv1.OrderTypeLimit, price, qty)
	require.NoError(t, err)
	return order
}

func TestBookSide_Insert_PriceOrdering(t *testing.T) {
	t.Run("bids sorted descending", func(t *testing.T) {
		bids := NewBookSide(orderv1.SideBuy)

		require.NoError(t, bids.Insert(newTestOrder(t, orderv1.SideBuy, 10_000, 1)))
		require.NoError(t, bids.Insert(newTestOrder(t, orderv1.SideBuy, 10_200, 1)))
		require.NoError(t, bids.Insert(newTestOrder(t, orderv1.SideBuy, 10_100, 1)))

		levels := bids.Levels()
		require.Len(t, levels, 3)
		assert.Equal(t, 10_200.0, levels[0].Price())
		assert.Equal(t, 10_100.0, levels[1].Price())
		assert.Equal(t, 10_000.0, levels[2].Price())

		best, ok := bids.BestPrice()
		require.True(t, ok)
		assert.Equal(t, 10_200.0, best)
	})

	t.Run("asks sorted ascending", func(t *testing.T) {
		asks := NewBookSide(orderv1.SideSell)

		require.NoError(t, asks.Insert(newTestOrder(t, orderv1.SideSell, 10_200, 1)))
		require.NoError(t, asks.Insert(newTestOrder(t, orderv1.SideSell, 10_000, 1)))
		require.NoError(t, asks.Insert(newTestOrder(t, orderv1.SideSell, 10_100, 1)))

		levels := asks.Levels()
		require.Len(t, levels, 3)
		assert.Equal(t, 10_000.0, levels[0].Price())
		assert.Equal(t, 10_100.0, levels[1].Price())
		assert.Equal(t, 10_200.0, levels[2].Price())
	})
}

func TestBookSide_Insert_SideMismatch(t *testing.T) {
	bids := NewBookSide(orderv1.SideBuy)

	err := bids.Insert(newTestOrder(t, orderv1.SideSell, 10_000, 1))
	assert.ErrorIs(t, err, orderv1.ErrInvalidOrder)
	assert.True(t, bids.IsEmpty())
}

func TestBookSide_FIFOWithinLevel(t *testing.T) {
	asks := NewBookSide(orderv1.SideSell)

	first := newTestOrder(t, orderv1.SideSell, 10_000, 1)
	second := newTestOrder(t, orderv1.SideSell, 10_000, 2)
	require.NoError(t, asks.Insert(first))
	require.NoError(t, asks.Insert(second))

	assert.Equal(t, first.ID, asks.Best().ID)

	levels := asks.Levels()
	require.Len(t, levels, 1)
	assert.Equal(t, []string{first.ID, second.ID}, levels[0].OrderIDs())
	assert.Equal(t, 3.0, levels[0].TotalVolume())
}

func TestBookSide_FillBest(t *testing.T) {
	asks := NewBookSide(orderv1.SideSell)

	first := newTestOrder(t, orderv1.SideSell, 10_000, 5)
	second := newTestOrder(t, orderv1.SideSell, 10_000, 5)
	require.NoError(t, asks.Insert(first))
	require.NoError(t, asks.Insert(second))

	// partial fill keeps the head in place
	filled := asks.FillBest(2)
	require.NotNil(t, filled)
	assert.Equal(t, first.ID, filled.ID)
	assert.Equal(t, 3.0, first.RemainingQuantity)
	assert.Equal(t, first.ID, asks.Best().ID)
	assert.Equal(t, 8.0, asks.TotalVolume())

	// full fill pops the head
	filled = asks.FillBest(3)
	require.NotNil(t, filled)
	assert.True(t, first.IsFilled())
	assert.Equal(t, second.ID, asks.Best().ID)

	// consuming the level drops it
	asks.FillBest(5)
	assert.True(t, asks.IsEmpty())
	assert.Nil(t, asks.Best())
	assert.Nil(t, asks.FillBest(1))
}

func TestBookSide_Remove(t *testing.T) {
	bids := NewBookSide(orderv1.SideBuy)

	only := newTestOrder(t, orderv1.SideBuy, 10_000, 5)
	require.NoError(t, bids.Insert(only))

	removed, err := bids.Remove(only)
	require.NoError(t, err)
	assert.Equal(t, only.ID, removed.ID)
	// empty level is dropped, not retained
	assert.True(t, bids.IsEmpty())
	assert.Equal(t, 0, bids.Depth())

	_, err = bids.Remove(only)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestLevel_Remove_NotFound(t *testing.T) {
	level := NewLevel(10_000)
	require.NoError(t, level.Enqueue(newTestOrder(t, orderv1.SideBuy, 10_000, 1)))

	_, err := level.Remove("missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Equal(t, 1, level.OrderCount())
}

func TestSequencer_Monotonic(t *testing.T) {
	seq := NewSequencer()

	assert.Equal(t, int64(0), seq.Current())
	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, int64(2), seq.Current())
}
