// Package money formats integer and fractional cent amounts for display.
package money

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// FormatCurrency renders cents as a dollar amount with exactly two decimals.
// Cents are first rounded to a whole number with halves going toward
// positive infinity: 2000.5 formats as "20.01" and -2000.5 as "-20.00".
func FormatCurrency(cents float64) string {
	return decimal.NewFromFloat(cents).Add(half).Floor().Div(hundred).StringFixed(2)
}

// FormatCents is FormatCurrency for whole-cent amounts.
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}

// Percent returns rate percent of cents without rounding.
func Percent(cents int64, rate int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Mul(decimal.NewFromInt(rate)).Div(hundred)
}
