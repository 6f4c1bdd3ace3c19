// Package containers groups nets and shields into the structures the
// routing kernel places as a unit: shielded net stacks, shield-type
// groupings, overlapping-interval groupings, and multi-row bundles.
package containers

import (
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

// Container is anything that exposes a flat netlist of everything it holds,
// the composition BaseContainer in the original router expresses through
// inheritance; Go expresses it as an interface plus free helper functions.
type Container interface {
	TotalNetlist() []entities.Allocatable
}

// TotalWidth is the spacing-composition formula shared by every container:
// the sum of member widths, plus for each adjacent pair the larger of the
// upper space the first member reserves and the lower space the second
// member requires.
func TotalWidth(nl []entities.Allocatable) geom.Decimal {
	total := geom.Zero
	for _, n := range nl {
		total = total.Add(n.Width())
	}
	for i := 0; i < len(nl)-1; i++ {
		total = total.Add(geom.Max(nl[i].UpperSpace(), nl[i+1].LowerSpace()))
	}
	return total
}

// UpperSpaceOf is the upper space of a flat netlist: the last member's own
// upper space, since nothing after it consumes space within the container.
func UpperSpaceOf(nl []entities.Allocatable) geom.Decimal {
	return nl[len(nl)-1].UpperSpace()
}

// LowerSpaceOf mirrors UpperSpaceOf for the first member.
func LowerSpaceOf(nl []entities.Allocatable) geom.Decimal {
	return nl[0].LowerSpace()
}

// PinsOf collects every pin belonging to the Net members of nl, ignoring
// shields and blockages, matching BaseContainer.pins in the original.
func PinsOf(nl []entities.Allocatable) []entities.Pin {
	var pins []entities.Pin
	for _, a := range nl {
		if n, ok := a.(*entities.Net); ok {
			pins = append(pins, n.Pins()...)
		}
	}
	return pins
}
