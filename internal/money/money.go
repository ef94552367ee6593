// Package money holds every arithmetic operation on currency amounts.
//
// Amounts are float64 and keep full precision when stored. Rounding only
// happens when an amount is rendered for people (Format, Round2).
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Epsilon is the tolerance used when comparing two computed amounts.
const Epsilon = 1e-6

// Valid reports whether amount is a finite, non-negative number.
func Valid(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount >= 0
}

// Positive reports whether amount is strictly greater than zero.
func Positive(amount float64) bool {
	return amount > 0
}

// Sum adds amounts in order.
func Sum(amounts ...float64) float64 {
	var total float64
	for _, a := range amounts {
		total += a
	}
	return total
}

// Equal compares two amounts within Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Split divides total evenly across n recipients.
func Split(total float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return total / float64(n)
}

// Percent returns part as a percentage of total, 0 when total is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// Portion apportions share by the ratio part/total, 0 when part or total is zero.
func Portion(share, part, total float64) float64 {
	if part == 0 || total == 0 {
		return 0
	}
	return share * (part / total)
}

// Round2 rounds to cents for display.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// Format renders amount with two decimals and a dollar sign.
func Format(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}
