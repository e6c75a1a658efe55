package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformShippingFee(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1500, 1500}, // under 2000 keeps the original fee
		{2000, 3000},
		{2500, 3000},
		{3000, 3000},
		{3200, 3500},
		{3500, 4000},
		{3900, 4000},
		{4500, 5000},
		{5000, 6000},
		{9999, 10999},
		{10000, 12000},
		{15000, 17000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TransformShippingFee(tt.in), "fee %v", tt.in)
	}
}

func TestCalculateShippingFee(t *testing.T) {
	assert.Equal(t, 0.0, CalculateShippingFee(2500, ShippingFree))
	assert.Equal(t, 3000.0, CalculateShippingFee(2500, ShippingStandard))
}

func TestReturnAndExchangeFees(t *testing.T) {
	t.Run("standard adds 1000 on the transformed fee", func(t *testing.T) {
		fee := CalculateShippingFee(2500, ShippingStandard)
		assert.Equal(t, 4000.0, CalculateReturnFee(fee, ShippingStandard, 2500))
	})

	t.Run("free shipping charges original fee plus 1000", func(t *testing.T) {
		assert.Equal(t, 3500.0, CalculateReturnFee(0, ShippingFree, 2500))
	})

	t.Run("exchange fee doubles the return fee", func(t *testing.T) {
		assert.Equal(t, 8000.0, CalculateExchangeFee(4000))
	})
}
