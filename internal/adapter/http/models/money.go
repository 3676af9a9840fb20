package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts cross the API as major-unit decimal strings ("150.00"). The core
// works exclusively in int64 minor units, so conversion happens here and
// nowhere else.
const minorUnitExponent = 2

func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	shifted := amount.Shift(minorUnitExponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount must have at most %d decimal places", minorUnitExponent)
	}

	value := shifted.BigInt()
	if !value.IsInt64() {
		return 0, fmt.Errorf("amount is out of range")
	}

	return value.Int64(), nil
}

func FromMinorUnits(amountMinor int64) decimal.Decimal {
	return decimal.New(amountMinor, -minorUnitExponent)
}

func FormatMinorUnits(amountMinor int64) string {
	return FromMinorUnits(amountMinor).StringFixed(minorUnitExponent)
}
