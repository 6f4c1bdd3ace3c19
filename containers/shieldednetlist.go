package containers

import (
	"fmt"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/routeerr"
)

// ShieldedNetList is a run of x-overlapping nets that all share one shield
// type and can be routed together into a single gap, with shields spliced
// in beside (or wrapped around) the nets they protect. It applies only to:
//   - nets that mutually overlap in x (x_interval spans all of them)
//   - a single shield type across the whole group
//   - a group placeable together into one gap
type ShieldedNetList struct {
	data       []entities.Allocatable
	xInterval  geom.Interval
	shieldW    geom.Decimal
	layer      int
	groupName  string
	shieldType entities.ShieldType
	isGroupNet bool
}

// NewShieldedNetList builds the shielded stack for netlist. An empty
// netlist produces an empty, otherwise-zero ShieldedNetList (mirrors the
// original's early `if netlist == []: return` before any validation).
func NewShieldedNetList(netlist []*entities.Net, xInterval geom.Interval, shieldWidth geom.Decimal) (*ShieldedNetList, error) {
	s := &ShieldedNetList{xInterval: xInterval, shieldW: shieldWidth}
	if len(netlist) == 0 {
		return s, nil
	}
	for _, n := range netlist[1:] {
		if n.ShieldReq != netlist[0].ShieldReq {
			return nil, fmt.Errorf("%w: group %q mixes shield types %q and %q",
				routeerr.ErrMixedShieldType, netlist[0].GroupName(), netlist[0].ShieldReq, n.ShieldReq)
		}
	}

	first := netlist[0]
	s.layer = first.Layer
	s.groupName = first.GroupName()
	s.shieldType = first.ShieldReq
	s.isGroupNet = s.shieldType.IsGroupShield()

	switch {
	case !first.RequireShield():
		s.data = make([]entities.Allocatable, len(netlist))
		for i, n := range netlist {
			s.data[i] = n
		}
	case s.shieldType.IsGroupShield():
		s.buildWithGroupShield(netlist)
	default:
		s.buildWithPerNetShield(netlist)
	}
	return s, nil
}

// buildWithPerNetShield inserts one shield below every net and a final
// shield above the last, reproducing the original's exact neighbor
// indexing including its wraparound at i==0: the bottom-most shield's
// x-span is computed against the *last* net in the list (Python's
// `netlist[i - 1]` at i==0 resolves to `netlist[-1]`), not just the
// first net's own span.
func (s *ShieldedNetList) buildWithPerNetShield(netlist []*entities.Net) {
	last := len(netlist) - 1
	for i, n := range netlist {
		prev := netlist[last]
		if i > 0 {
			prev = netlist[i-1]
		}

		var space geom.Decimal
		if i == 0 {
			space = netlist[0].LowerSpace()
		} else {
			space = geom.Max(prev.UpperSpace(), n.LowerSpace())
		}

		ivBegin := geom.Max(prev.XInterval().Begin, n.XInterval().Begin)
		ivEnd := geom.Max(prev.XInterval().End, n.XInterval().End)

		shield := entities.NewShield(s.groupName+"-shield", s.shieldType, s.layer, ivBegin, ivEnd, s.shieldW, space)
		s.data = append(s.data, shield, n)
	}

	tail := netlist[last]
	topShield := entities.NewShield(s.groupName+"-shield", s.shieldType, s.layer,
		tail.XInterval().Begin, tail.XInterval().End, s.shieldW, tail.UpperSpace())
	s.data = append(s.data, topShield)
}

// buildWithGroupShield wraps the whole group in exactly two shields, top
// and bottom, each spanning the group's full x-interval.
func (s *ShieldedNetList) buildWithGroupShield(netlist []*entities.Net) {
	bottom := entities.NewShield(s.groupName+"-shield", s.shieldType, s.layer,
		s.xInterval.Begin, s.xInterval.End, s.shieldW, netlist[0].LowerSpace())
	top := entities.NewShield(s.groupName+"-shield", s.shieldType, s.layer,
		s.xInterval.Begin, s.xInterval.End, s.shieldW, netlist[len(netlist)-1].UpperSpace())

	s.data = make([]entities.Allocatable, 0, len(netlist)+2)
	s.data = append(s.data, bottom)
	for _, n := range netlist {
		s.data = append(s.data, n)
	}
	s.data = append(s.data, top)
}

// IsGroupNet reports whether this stack used a single wrap-around group
// shield instead of one shield per net.
func (s *ShieldedNetList) IsGroupNet() bool {
	return s.isGroupNet
}

func (s *ShieldedNetList) XInterval() geom.Interval {
	return s.xInterval
}

func (s *ShieldedNetList) TotalNetlist() []entities.Allocatable {
	return s.data
}

func (s *ShieldedNetList) Width() geom.Decimal {
	return TotalWidth(s.data)
}

func (s *ShieldedNetList) WidthWithSpace() geom.Decimal {
	return s.Width().Add(s.UpperSpace()).Add(s.LowerSpace())
}

func (s *ShieldedNetList) UpperSpace() geom.Decimal {
	return UpperSpaceOf(s.data)
}

func (s *ShieldedNetList) LowerSpace() geom.Decimal {
	return LowerSpaceOf(s.data)
}

func (s *ShieldedNetList) Pins() []entities.Pin {
	return PinsOf(s.data)
}

func (s *ShieldedNetList) VerticalWirelength(y *geom.Decimal) geom.Decimal {
	return entities.VerticalWirelength(s.Pins(), y)
}

// Len reports how many placeables (nets and shields) this stack holds.
func (s *ShieldedNetList) Len() int {
	return len(s.data)
}

// At returns the i-th placeable in placement order.
func (s *ShieldedNetList) At(i int) entities.Allocatable {
	return s.data[i]
}
