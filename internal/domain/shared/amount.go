package shared

import (
	"github.com/shopspring/decimal"
)

// MinorUnitScale is the number of fraction digits amounts are stored with
const MinorUnitScale = 2

var minorUnitFactor = decimal.New(1, MinorUnitScale)

// MinorUnits converts a decimal amount such as 12.50 into 1250 minor units.
// Amounts with more fraction digits than MinorUnitScale are rejected rather than rounded.
func MinorUnits(field string, d decimal.Decimal) (int64, error) {
	scaled := d.Mul(minorUnitFactor)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, Invalid(field, "%s has more than %d decimal places", d.String(), MinorUnitScale)
	}
	if !scaled.Abs().LessThan(decimal.New(1, 18)) {
		return 0, Invalid(field, "%s is out of range", d.String())
	}
	return scaled.IntPart(), nil
}

// FromMinorUnits converts minor units back into a decimal amount
func FromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -MinorUnitScale)
}
