package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePrice(t *testing.T) {
	t.Run("no rates returns base price", func(t *testing.T) {
		assert.Equal(t, 10000.0, CalculatePrice(10000, PricingConfig{}))
	})

	t.Run("margin only", func(t *testing.T) {
		got := CalculatePrice(10000, PricingConfig{MarginRate: 30})
		assert.Equal(t, 13000.0, got)
	})

	t.Run("commission grosses price up", func(t *testing.T) {
		// 10000 / (1 - 0.10) = 11111.11 -> 11111
		got := CalculatePrice(10000, PricingConfig{CommissionRate: 10})
		assert.Equal(t, 11111.0, got)
	})

	t.Run("discount applies last", func(t *testing.T) {
		got := CalculatePrice(10000, PricingConfig{MarginRate: 30, DiscountRate: 50})
		assert.Equal(t, 6500.0, got)
	})

	t.Run("all three combined", func(t *testing.T) {
		// 10000 * 1.2 = 12000; / 0.9 = 13333.33; * 0.9 = 12000
		got := CalculatePrice(10000, PricingConfig{MarginRate: 20, CommissionRate: 10, DiscountRate: 10})
		assert.Equal(t, 12000.0, got)
	})

	t.Run("rounds to whole won", func(t *testing.T) {
		got := CalculatePrice(999, PricingConfig{MarginRate: 33})
		assert.Equal(t, 1329.0, got) // 999 * 1.33 = 1328.67
	})
}

func TestLookupPrice(t *testing.T) {
	table := []PriceTier{
		{Price: 30000, Result: 39900},
		{Price: 10000, Result: 14900},
		{Price: 20000, Result: 27900},
	}

	t.Run("exact match", func(t *testing.T) {
		got, ok := LookupPrice(20000, table)
		assert.True(t, ok)
		assert.Equal(t, 27900.0, got)
	})

	t.Run("greatest lower bound", func(t *testing.T) {
		got, ok := LookupPrice(25000, table)
		assert.True(t, ok)
		assert.Equal(t, 27900.0, got)
	})

	t.Run("below every tier", func(t *testing.T) {
		_, ok := LookupPrice(5000, table)
		assert.False(t, ok)
	})

	t.Run("empty table", func(t *testing.T) {
		_, ok := LookupPrice(10000, nil)
		assert.False(t, ok)
	})
}
