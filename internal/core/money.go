package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// MinAmount is the smallest amount a transaction form accepts.
var MinAmount = decimal.New(1, -2)

// ParseAmount converts a user-typed amount to a decimal with two places.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up on the third decimal place. Signs, exponents and thousands
// separators are rejected, as are amounts below 0.01 after rounding.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("12,345") -> 12.35
//	ParseAmount("0.004")  -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.':
		default:
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if digits == 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.LessThan(MinAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmountInput renders an amount the way the amount input expects it back.
func FormatAmountInput(d decimal.Decimal) string {
	return d.StringFixed(2)
}
