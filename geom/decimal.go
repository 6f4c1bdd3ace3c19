// Package geom holds the exact-decimal and interval primitives the routing
// kernel is built on. No float64 ever reaches a geometric comparison here.
package geom

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal is the arbitrary-precision signed decimal type used for every
// coordinate and spacing value in the router. Arithmetic is exact.
type Decimal = decimal.Decimal

// TrunkEpsilon widens a zero-length trunk (x_min == x_max) so its x-interval
// is never degenerate. Matches the original `Decimal("0.0000001")`.
var TrunkEpsilon = decimal.RequireFromString("0.0000001")

// Zero is the additive identity.
var Zero = decimal.Zero

// MustDecimal parses s into a Decimal, panicking on malformed input. Use
// only for compile-time-known literals (tests, constants); input parsed at
// runtime must go through ParseDecimal so malformed CSV/YAML values surface
// as errors instead of panics.
func MustDecimal(s string) Decimal {
	return decimal.RequireFromString(s)
}

// ParseDecimal parses untrusted input (CSV/YAML cell values) into a Decimal.
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return d, nil
}

// Max returns the greater of a and b.
func Max(a, b Decimal) Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Min returns the lesser of a and b.
func Min(a, b Decimal) Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
