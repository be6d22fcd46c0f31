package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentChange compares newValue against oldValue as a percentage with scale
// digits. A missing or zero base reads as 100 when newValue grew and 0 otherwise;
// a missing newValue reads as -100.
func PercentChange(oldValue, newValue decimal.NullDecimal, scale int32) decimal.Decimal {
	if !oldValue.Valid || oldValue.Decimal.IsZero() {
		if newValue.Valid && newValue.Decimal.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	if !newValue.Valid {
		return hundred.Neg()
	}
	return newValue.Decimal.Sub(oldValue.Decimal).
		DivRound(oldValue.Decimal, 4).
		Mul(hundred).
		Round(scale)
}
