// Package money converts between human decimal input and integer paise
// (minor units). All arithmetic is decimal-exact; binary floating point is
// never involved, so cent-level drift cannot occur.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the fixed currency symbol used when rendering amounts.
const Symbol = "₹"

var (
	// ErrInvalidAmount indicates the input is not a well-formed number.
	ErrInvalidAmount = errors.New("invalid amount: enter a number like 100 or 100.50")

	// ErrNonPositiveAmount indicates the parsed amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// ParseAmount parses a human amount string such as "100", "100.5" or
// "1,000.00" into integer paise. An optional leading currency symbol and
// thousands separators are accepted. The value is rounded half-up to two
// decimal places before conversion.
func ParseAmount(input string) (int64, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, Symbol)
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	// Round is half away from zero, which equals half-up for the positive
	// amounts accepted below.
	d = d.Round(2)
	if d.Sign() <= 0 {
		return 0, ErrNonPositiveAmount
	}

	return d.Shift(2).IntPart(), nil
}

// FormatAmount renders integer paise as a currency string with exactly two
// decimal places, e.g. 12345 -> "₹123.45".
func FormatAmount(paise int64) string {
	return Symbol + decimal.NewFromInt(paise).Shift(-2).StringFixed(2)
}
