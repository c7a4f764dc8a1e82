package uint128

import (
	"github.com/shopspring/decimal"

	"marketmodel/xerr"
)

// FromDecimal scales d by 10^decimals and stores the integer result. A
// fractional remainder after scaling is a precision loss and fails with
// RangeExceeded, as do negative and oversized values.
func FromDecimal(d decimal.Decimal, decimals int32) (UInt128, error) {
	if decimals < 0 {
		return Zero, xerr.New(xerr.RangeExceeded, "uint128: negative decimals %d", decimals)
	}
	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return Zero, xerr.New(xerr.RangeExceeded, "uint128: %s has more than %d decimals", d, decimals)
	}
	return FromBig(scaled.BigInt())
}

// Decimal is the inverse of FromDecimal.
func (u UInt128) Decimal(decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(u.Big(), -decimals)
}
