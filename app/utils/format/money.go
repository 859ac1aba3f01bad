package format

import (
	"math"

	"github.com/shopspring/decimal"
)

// ToMoney normalizes a monetary value to a two-decimal fixed-point string,
// the only representation the gateway accepts. Non-numeric, non-finite and
// negative inputs all collapse to "0.00".
func ToMoney(v any) string {
	var d decimal.Decimal

	switch t := v.(type) {
	case nil:
		return "0.00"
	case decimal.Decimal:
		d = t
	case string:
		parsed, err := decimal.NewFromString(t)
		if err != nil {
			return "0.00"
		}
		d = parsed
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "0.00"
		}
		d = decimal.NewFromFloat(t)
	case float32:
		return ToMoney(float64(t))
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	default:
		return "0.00"
	}

	if d.IsNegative() {
		return "0.00"
	}
	return d.StringFixed(2)
}
