// Package entities holds the geometric placeables the routing kernel
// allocates into a RoutingArea: pins, nets, shields, blockages, and the
// Allocation that records where one of them ended up.
package entities

import (
	"sort"

	"github.com/edalab/gcr/geom"
)

// Allocatable is anything RoutingArea.Allocate can place: it has an
// x-extent and the vertical spacing it demands above and below itself.
// This interface replaces the Python original's isinstance chain over
// Blockage/Net/Shield/Allocation/container types with a single closed
// contract every placeable type satisfies directly.
type Allocatable interface {
	XInterval() geom.Interval
	Width() geom.Decimal
	UpperSpace() geom.Decimal
	LowerSpace() geom.Decimal
}

// WirePins is implemented by placeables whose vertical position is driven
// by a set of pin y-coordinates (nets). It composes with Allocatable via
// the free functions below rather than default interface methods, which Go
// does not have.
type WirePins interface {
	Allocatable
	Pins() []Pin
}

// YMidUpper returns the y-coordinate of the pin just above (or at) the
// vertical median of pins, matching the original's odd/even split:
// for an odd pin count both mid bounds collapse to the single median pin;
// for an even count the upper bound is the higher of the two middle pins.
func YMidUpper(pins []Pin) geom.Decimal {
	sorted := sortedByY(pins)
	n := len(sorted)
	if n%2 != 0 {
		return sorted[n/2].Y
	}
	return sorted[n/2].Y
}

// YMidLower is the lower counterpart to YMidUpper: for an even pin count
// it is the lower of the two middle pins, otherwise the same median pin.
func YMidLower(pins []Pin) geom.Decimal {
	sorted := sortedByY(pins)
	n := len(sorted)
	if n%2 != 0 {
		return sorted[n/2].Y
	}
	return sorted[n/2-1].Y
}

// YMid is the average of YMidLower and YMidUpper.
func YMid(pins []Pin) geom.Decimal {
	return YMidLower(pins).Add(YMidUpper(pins)).Div(geom.MustDecimal("2"))
}

// VerticalWirelength sums |pin.Y - y| over pins, defaulting y to YMid(pins)
// when y is nil.
func VerticalWirelength(pins []Pin, y *geom.Decimal) geom.Decimal {
	var target geom.Decimal
	if y != nil {
		target = *y
	} else {
		target = YMid(pins)
	}
	total := geom.Zero
	for _, p := range pins {
		total = total.Add(p.Y.Sub(target).Abs())
	}
	return total
}

func sortedByY(pins []Pin) []Pin {
	out := make([]Pin, len(pins))
	copy(out, pins)
	sort.Slice(out, func(i, j int) bool { return out[i].Y.LessThan(out[j].Y) })
	return out
}
