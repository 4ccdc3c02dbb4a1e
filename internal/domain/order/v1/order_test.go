package orderv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("valid limit order", func(t *testing.T) {
		order, err := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 10_000, 2.5)

		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "BTC-USD", order.InstrumentID)
		assert.Equal(t, SideBuy, order.Side)
		assert.Equal(t, OrderTypeLimit, order.Type)
		assert.Equal(t, 10_000.0, order.Price)
		assert.Equal(t, 2.5, order.OriginalQuantity)
		assert.Equal(t, 2.5, order.RemainingQuantity)
		assert.Equal(t, StatusUnfilled, order.Status)
	})

	t.Run("market order ignores supplied price", func(t *testing.T) {
		order, err := NewOrder("BTC-USD", SideSell, OrderTypeMarket, 9_999, 1.0)

		require.NoError(t, err)
		assert.Equal(t, 0.0, order.Price)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 10_000, 0)
		assert.ErrorIs(t, err, ErrInvalidOrder)

		_, err = NewOrder("BTC-USD", SideBuy, OrderTypeMarket, 0, -3)
		assert.ErrorIs(t, err, ErrInvalidOrder)
	})

	t.Run("rejects non-positive limit price", func(t *testing.T) {
		_, err := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 0, 1)
		assert.ErrorIs(t, err, ErrInvalidOrder)

		_, err = NewOrder("BTC-USD", SideBuy, OrderTypeLimit, -10, 1)
		assert.ErrorIs(t, err, ErrInvalidOrder)
	})

	t.Run("rejects unknown side", func(t *testing.T) {
		_, err := NewOrder("BTC-USD", Side("hold"), OrderTypeLimit, 10, 1)
		assert.ErrorIs(t, err, ErrInvalidOrder)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewOrder("BTC-USD", SideBuy, OrderType("stop"), 10, 1)
		assert.ErrorIs(t, err, ErrInvalidOrder)
	})

	t.Run("rejects empty instrument", func(t *testing.T) {
		_, err := NewOrder("", SideBuy, OrderTypeLimit, 10, 1)
		assert.ErrorIs(t, err, ErrInvalidOrder)
	})
}

func TestOrder_ApplyFill(t *testing.T) {
	t.Run("partial then full fill", func(t *testing.T) {
		order, err := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 10_000, 10)
		require.NoError(t, err)

		order.ApplyFill(4)
		assert.Equal(t, 6.0, order.RemainingQuantity)
		assert.Equal(t, StatusPartiallyFilled, order.Status)
		assert.Equal(t, 4.0, order.FilledQuantity())
		assert.False(t, order.IsFilled())

		order.ApplyFill(6)
		assert.Equal(t, 0.0, order.RemainingQuantity)
		assert.Equal(t, StatusFilled, order.Status)
		assert.True(t, order.IsFilled())
	})

	t.Run("panics on non-positive quantity", func(t *testing.T) {
		order, err := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 10_000, 10)
		require.NoError(t, err)

		assert.Panics(t, func() { order.ApplyFill(0) })
		assert.Panics(t, func() { order.ApplyFill(-1) })
	})

	t.Run("panics on overfill", func(t *testing.T) {
		order, err := NewOrder("BTC-USD", SideBuy, OrderTypeLimit, 10_000, 10)
		require.NoError(t, err)

		assert.Panics(t, func() { order.ApplyFill(10.5) })
		// state untouched by the failed fill
		assert.Equal(t, 10.0, order.RemainingQuantity)
		assert.Equal(t, StatusUnfilled, order.Status)
	})
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}
