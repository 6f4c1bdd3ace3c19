package containers

import (
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

// ShieldDict buckets an x-overlapping netlist by shield type, each bucket
// becoming its own ShieldedNetList, and lets the buckets be treated as one
// placeable unit.
type ShieldDict struct {
	xInterval geom.Interval
	byType    *OrderedMap[entities.ShieldType, *ShieldedNetList]
}

// NewShieldDict groups netlist by ShieldReq (in order of first appearance)
// and builds a ShieldedNetList per group.
func NewShieldDict(netlist []*entities.Net, xInterval geom.Interval, shieldWidth geom.Decimal) (*ShieldDict, error) {
	d := &ShieldDict{xInterval: xInterval, byType: NewOrderedMap[entities.ShieldType, *ShieldedNetList]()}

	grouped := NewOrderedMap[entities.ShieldType, []*entities.Net]()
	for _, n := range netlist {
		existing, _ := grouped.Get(n.ShieldReq)
		grouped.Set(n.ShieldReq, append(existing, n))
	}

	for _, shieldType := range grouped.Keys() {
		nl, _ := grouped.Get(shieldType)
		snl, err := NewShieldedNetList(nl, xInterval, shieldWidth)
		if err != nil {
			return nil, err
		}
		d.byType.Set(shieldType, snl)
	}
	return d, nil
}

func (d *ShieldDict) XInterval() geom.Interval {
	return d.xInterval
}

// ShieldTypes returns the shield types present, in first-seen order.
func (d *ShieldDict) ShieldTypes() []entities.ShieldType {
	return d.byType.Keys()
}

// Get returns the ShieldedNetList for the given shield type, if present.
func (d *ShieldDict) Get(t entities.ShieldType) (*ShieldedNetList, bool) {
	return d.byType.Get(t)
}

func (d *ShieldDict) TotalNetlist() []entities.Allocatable {
	var out []entities.Allocatable
	for _, snl := range d.byType.Values() {
		out = append(out, snl.TotalNetlist()...)
	}
	return out
}

func (d *ShieldDict) Width() geom.Decimal {
	return TotalWidth(d.TotalNetlist())
}

func (d *ShieldDict) WidthWithSpace() geom.Decimal {
	return d.Width().Add(d.UpperSpace()).Add(d.LowerSpace())
}

func (d *ShieldDict) UpperSpace() geom.Decimal {
	return UpperSpaceOf(d.TotalNetlist())
}

func (d *ShieldDict) LowerSpace() geom.Decimal {
	return LowerSpaceOf(d.TotalNetlist())
}

func (d *ShieldDict) Pins() []entities.Pin {
	return PinsOf(d.TotalNetlist())
}

func (d *ShieldDict) VerticalWirelength(y *geom.Decimal) geom.Decimal {
	return entities.VerticalWirelength(d.Pins(), y)
}

// Len reports how many distinct shield types this dict holds.
func (d *ShieldDict) Len() int {
	return d.byType.Len()
}
