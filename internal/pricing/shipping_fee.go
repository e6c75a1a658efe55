package pricing

// ShippingMethod selects how the upload file presents delivery cost.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard" // keep a (transformed) paid fee
	ShippingFree     ShippingMethod = "free"     // convert to free shipping
)

// TransformShippingFee maps a supplier shipping fee onto the fee bands used
// for uploads. Fees under 2,000원 (and free shipping) pass through.
func TransformShippingFee(cost float64) float64 {
	c := int(cost)
	switch {
	case c == 0:
		return 0
	case c >= 2000 && c <= 3000:
		return 3000
	case c > 3000 && c < 3500:
		return 3500
	case c >= 3500 && c < 4000:
		return 4000
	case c > 4000 && c < 5000:
		return 5000
	case c >= 5000 && c < 10000:
		return float64(c + 1000)
	case c >= 10000:
		return float64(c + 2000)
	default:
		return float64(c)
	}
}

// CalculateShippingFee applies the configured shipping method to the original
// supplier fee.
func CalculateShippingFee(originalFee float64, method ShippingMethod) float64 {
	if method == ShippingFree {
		return 0
	}
	return TransformShippingFee(originalFee)
}

// CalculateReturnFee derives the return-shipping fee. Under free shipping the
// buyer pays the hidden original fee plus 1,000원; otherwise the transformed
// fee plus 1,000원.
func CalculateReturnFee(shippingFee float64, method ShippingMethod, originalFee float64) float64 {
	if method == ShippingFree {
		return float64(int(originalFee) + 1000)
	}
	return float64(int(shippingFee) + 1000)
}

// CalculateExchangeFee is twice the return fee (both legs).
func CalculateExchangeFee(returnFee float64) float64 {
	return float64(int(returnFee) * 2)
}
