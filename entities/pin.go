package entities

import (
	"fmt"

	"github.com/edalab/gcr/geom"
)

// Pin is a single connection point of a net.
type Pin struct {
	X geom.Decimal
	Y geom.Decimal
}

func (p Pin) String() string {
	return fmt.Sprintf("Pin: (%s, %s)", p.X, p.Y)
}

// SpaceType marks which side of an allocation a spacing reservation sits on.
type SpaceType int

const (
	SpaceAbove SpaceType = iota + 1
	SpaceBelow
)

func (t SpaceType) String() string {
	switch t {
	case SpaceAbove:
		return "ABOVE"
	case SpaceBelow:
		return "BELOW"
	default:
		return "UNKNOWN"
	}
}

// Space is an auxiliary y-interval inserted into a RoutingArea's y-tree
// alongside each real allocation, so ceiling/offset queries can see the
// spacing an allocation reserves without treating it as occupied width.
type Space struct {
	Type SpaceType
	YMin geom.Decimal
	YMax geom.Decimal
}

// YInterval returns the [YMin, YMax) span of this space reservation.
func (s Space) YInterval() geom.Interval {
	return geom.NewInterval(s.YMin, s.YMax)
}
