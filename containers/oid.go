package containers

import (
	"sort"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

// OID (OverlappedIntervalDict) groups a net group's ShieldDicts by merged,
// mutually-overlapping x-interval: every net sharing an exact x-interval
// forms one bucket, then buckets whose intervals overlap are merged into a
// single wider interval so their ShieldDicts can be stacked vertically in
// the same gap without x-collision.
//
// Interval is not a safe Go map key (see geom.Interval's doc comment), so
// both the exact-interval grouping step and the final merged-interval
// lookup are done with ordered slices and explicit Equal/Overlaps
// comparisons rather than map[geom.Interval]V.
type OID struct {
	Name   string
	groups []oidGroup
}

type oidGroup struct {
	interval geom.Interval
	dict     *ShieldDict
}

// NewOIDFromNetlist builds an OID named after the first net's group name
// (or "" for an empty netlist), the shape problem-settings' own
// OID-generation helper produces.
func NewOIDFromNetlist(netlist []*entities.Net, shieldWidth geom.Decimal) (*OID, error) {
	name := ""
	if len(netlist) > 0 {
		name = netlist[0].GroupName()
	}
	return NewOID(name, netlist, shieldWidth)
}

// NewOID builds an OID for one net group.
func NewOID(netGroupName string, netlist []*entities.Net, shieldWidth geom.Decimal) (*OID, error) {
	exact := groupByExactInterval(netlist)
	merged := mergeIntervals(intervalsOf(exact))

	buckets := make([][]*entities.Net, len(merged))
	for _, g := range exact {
		for i, m := range merged {
			if m.Overlaps(g.interval) {
				buckets[i] = append(buckets[i], g.nets...)
				break
			}
		}
	}

	o := &OID{Name: netGroupName}
	for i, iv := range merged {
		dict, err := NewShieldDict(buckets[i], iv, shieldWidth)
		if err != nil {
			return nil, err
		}
		o.groups = append(o.groups, oidGroup{interval: iv, dict: dict})
	}
	return o, nil
}

type exactGroup struct {
	interval geom.Interval
	nets     []*entities.Net
}

// groupByExactInterval buckets nets sharing the exact same x-interval,
// preserving first-seen order. A linear .Equal() scan, not a map, because
// geom.Interval cannot be a map key.
func groupByExactInterval(netlist []*entities.Net) []exactGroup {
	var groups []exactGroup
	for _, n := range netlist {
		iv := n.XInterval()
		found := false
		for i := range groups {
			if groups[i].interval.Equal(iv) {
				groups[i].nets = append(groups[i].nets, n)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, exactGroup{interval: iv, nets: []*entities.Net{n}})
		}
	}
	return groups
}

func intervalsOf(groups []exactGroup) []geom.Interval {
	out := make([]geom.Interval, len(groups))
	for i, g := range groups {
		out[i] = g.interval
	}
	return out
}

// mergeIntervals sorts ivs by Begin and greedily merges overlapping runs,
// grounded on the teacher's cidr.Merge sort-then-merge shape (CIDR ranges
// there, x-intervals here).
func mergeIntervals(ivs []geom.Interval) []geom.Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := make([]geom.Interval, len(ivs))
	copy(sorted, ivs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Begin.LessThan(sorted[j].Begin) })

	merged := make([]geom.Interval, 0, len(sorted))
	current := sorted[0]
	for _, iv := range sorted[1:] {
		if current.Overlaps(iv) {
			current = geom.NewInterval(current.Begin, geom.Max(current.End, iv.End))
			continue
		}
		merged = append(merged, current)
		current = iv
	}
	merged = append(merged, current)
	return merged
}

func (o *OID) XInterval() geom.Interval {
	nl := o.TotalNetlist()
	if len(nl) == 0 {
		return geom.Interval{}
	}
	begin, end := nl[0].XInterval().Begin, nl[0].XInterval().End
	for _, n := range nl[1:] {
		begin = geom.Min(begin, n.XInterval().Begin)
		end = geom.Max(end, n.XInterval().End)
	}
	return geom.NewInterval(begin, end)
}

func (o *OID) TotalNetlist() []entities.Allocatable {
	var out []entities.Allocatable
	for _, g := range o.groups {
		out = append(out, g.dict.TotalNetlist()...)
	}
	return out
}

// Width is the widest member ShieldDict's width, not a spacing-composed
// sum: each ShieldDict bucket is stacked at the same y-offset range (they
// don't overlap in x), so the OID's vertical footprint is bounded by its
// tallest bucket.
func (o *OID) Width() geom.Decimal {
	w := o.groups[0].dict.Width()
	for _, g := range o.groups[1:] {
		w = geom.Max(w, g.dict.Width())
	}
	return w
}

func (o *OID) WidthWithSpace() geom.Decimal {
	w := o.groups[0].dict.WidthWithSpace()
	for _, g := range o.groups[1:] {
		w = geom.Max(w, g.dict.WidthWithSpace())
	}
	return w
}

func (o *OID) UpperSpace() geom.Decimal {
	if len(o.groups) > 1 {
		return o.WidthWithSpace().Sub(o.Width()).Div(geom.MustDecimal("2"))
	}
	nl := o.TotalNetlist()
	return nl[len(nl)-1].UpperSpace()
}

func (o *OID) LowerSpace() geom.Decimal {
	if len(o.groups) > 1 {
		return o.WidthWithSpace().Sub(o.Width()).Div(geom.MustDecimal("2"))
	}
	nl := o.TotalNetlist()
	return nl[0].LowerSpace()
}

func (o *OID) Pins() []entities.Pin {
	return PinsOf(o.TotalNetlist())
}

func (o *OID) VerticalWirelength(y *geom.Decimal) geom.Decimal {
	return entities.VerticalWirelength(o.Pins(), y)
}

func (o *OID) YMidUpper() geom.Decimal { return entities.YMidUpper(o.Pins()) }
func (o *OID) YMidLower() geom.Decimal { return entities.YMidLower(o.Pins()) }
func (o *OID) YMid() geom.Decimal      { return entities.YMid(o.Pins()) }

// Len reports how many merged-interval buckets this OID holds.
func (o *OID) Len() int {
	return len(o.groups)
}

// ShieldDicts returns the bucket ShieldDicts in ascending x-interval order.
func (o *OID) ShieldDicts() []*ShieldDict {
	out := make([]*ShieldDict, len(o.groups))
	for i, g := range o.groups {
		out[i] = g.dict
	}
	return out
}
