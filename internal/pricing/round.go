package pricing

import "github.com/shopspring/decimal"

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatMoney renders an amount with two decimals, e.g. "1706.65".
func FormatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
