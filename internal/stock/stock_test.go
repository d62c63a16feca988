package stock_test

import (
	"testing"

	"github.com/stockbuddy07/styleswap/internal/stock"
	"github.com/stretchr/testify/assert"
)

func TestApplyDelta(t *testing.T) {
	t.Run("Simple Decrement", func(t *testing.T) {
		assert.Equal(t, 3, stock.ApplyDelta(5, 5, -2))
	})

	t.Run("Over Decrement Floors At Zero", func(t *testing.T) {
		assert.Equal(t, 0, stock.ApplyDelta(5, 5, -7))
	})

	t.Run("Simple Increment", func(t *testing.T) {
		assert.Equal(t, 4, stock.ApplyDelta(2, 5, 2))
	})

	t.Run("Over Increment Ceils At Total", func(t *testing.T) {
		assert.Equal(t, 5, stock.ApplyDelta(4, 5, 3))
	})

	t.Run("Zero Delta Is Identity", func(t *testing.T) {
		assert.Equal(t, 2, stock.ApplyDelta(2, 5, 0))
	})

	t.Run("Bounds Hold Over A Sequence Of Deltas", func(t *testing.T) {
		available, total := 5, 5
		for _, delta := range []int{-3, -4, 10, -1, 2, -9, 6} {
			available = stock.ApplyDelta(available, total, delta)
			assert.GreaterOrEqual(t, available, 0)
			assert.LessOrEqual(t, available, total)
		}
	})
}

func TestCanReserve(t *testing.T) {
	assert.True(t, stock.CanReserve(5, 5))
	assert.True(t, stock.CanReserve(5, 1))
	assert.False(t, stock.CanReserve(5, 6))
	assert.False(t, stock.CanReserve(0, 1))
	assert.False(t, stock.CanReserve(5, 0))
	assert.False(t, stock.CanReserve(5, -1))
}
