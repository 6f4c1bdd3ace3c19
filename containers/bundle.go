package containers

import (
	"fmt"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

// Bundle groups several OIDs from one net group that are too large to fit
// a single routing area, scheduling them across consecutive areas instead.
type Bundle struct {
	Name string
	OIDs []*OID
}

// NewBundle wraps oids under netGroupName.
func NewBundle(netGroupName string, oids []*OID) *Bundle {
	return &Bundle{Name: netGroupName, OIDs: oids}
}

func (b *Bundle) TotalNetlist() []entities.Allocatable {
	var out []entities.Allocatable
	for _, o := range b.OIDs {
		out = append(out, o.TotalNetlist()...)
	}
	return out
}

// VerticalWirelengthWithMultiY sums each member OID's vertical wirelength
// evaluated at its own candidate y, one per routing area the scheduler is
// considering for this bundle.
func (b *Bundle) VerticalWirelengthWithMultiY(heights []geom.Decimal) (geom.Decimal, error) {
	if len(heights) != len(b.OIDs) {
		return geom.Decimal{}, fmt.Errorf("containers: VerticalWirelengthWithMultiY: got %d heights for %d OIDs", len(heights), len(b.OIDs))
	}
	total := geom.Zero
	for i, o := range b.OIDs {
		h := heights[i]
		total = total.Add(o.VerticalWirelength(&h))
	}
	return total, nil
}

// Len reports how many OIDs this bundle holds.
func (b *Bundle) Len() int {
	return len(b.OIDs)
}

// Pins collects every pin across every member OID, needed to rank bundles
// by pin count before scheduling (the widest-impact bundles go first).
func (b *Bundle) Pins() []entities.Pin {
	var out []entities.Pin
	for _, o := range b.OIDs {
		out = append(out, o.Pins()...)
	}
	return out
}
