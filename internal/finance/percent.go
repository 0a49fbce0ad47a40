package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percent returns part/base*100 rounded to two decimal places. The result is
// undefined, and ok is false, when base is zero.
func Percent(part, base decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if base.IsZero() {
		return decimal.Zero, false
	}
	return part.Div(base).Mul(hundred).Round(2), true
}

// PercentChange is the relative change of current from base.
func PercentChange(current, base decimal.Decimal) (decimal.Decimal, bool) {
	return Percent(current.Sub(base), base)
}
