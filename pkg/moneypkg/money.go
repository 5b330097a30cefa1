// Package moneypkg converts boundary decimal amounts to and from minor units.
//
// All balance arithmetic in the engine is int64 minor units (cents);
// decimal strings exist only at the API boundary.
package moneypkg

import (
	"github.com/shopspring/decimal"

	"github.com/go-wallet/ledger-engine/internal/domain"
)

// Exponent is the number of decimal places carried by the currency.
const Exponent = 2

// ToMinorUnits parses a decimal amount string and returns its value in
// minor units.
//
// It returns domain.ErrInvalidAmount if the string is not a valid decimal
// or carries more than Exponent decimal places, and domain.ErrNegativeAmount
// if the value is not strictly positive.
func ToMinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, domain.ErrInvalidAmount
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return 0, domain.ErrNegativeAmount
	}

	minor := d.Shift(Exponent)
	if !minor.IsInteger() {
		return 0, domain.ErrInvalidAmount
	}

	return minor.IntPart(), nil
}

// FromMinorUnits renders minor units as a fixed-point decimal string.
func FromMinorUnits(minor int64) string {
	return decimal.New(minor, -Exponent).StringFixed(Exponent)
}
