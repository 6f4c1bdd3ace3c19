// Package routingarea implements the placement kernel: a single gap or
// sub-channel's x-axis interval tree of allocations, and the ceiling/offset
// arithmetic that decides where a new net, shield, or net group fits.
package routingarea

import (
	"fmt"

	"github.com/edalab/gcr/arena"
	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/routeerr"
)

// Infinity stands in for the original's Decimal("inf"); shopspring/decimal
// has no infinity value. Callers pass it as the width of an area with no
// fixed vertical capacity (see New), and it seeds minimum searches such as
// YMaxSpaceMin's smallest upper space.
var Infinity = geom.MustDecimal("1000000000000000000")

// RoutingArea is one gap or sub-channel: a vertical strip of fixed
// vertical capacity (Width, in the original's gap/channel terminology)
// sitting at some absolute baseline (Height) in the overall layout.
type RoutingArea struct {
	ID     int
	Width  geom.Decimal
	Height geom.Decimal

	// Congestion is scratch state used by channel.PrioritizeRoutingAreas'
	// global-congestion-ordering heuristic; it has no meaning outside one
	// GCO pass and is reset at the start of each call.
	Congestion float64

	xTree        *geom.IntervalTree
	InitCeilings []geom.Decimal

	// scratch backs the transient *entities.Allocation pointers
	// BuildYIntervalTree hands to each probing y-interval tree. A single
	// ceiling-offset decision calls GetOffset, which rebuilds that tree
	// from scratch, many times over in channel.go's relaxation loop; reusing
	// chunks here instead of heap-allocating one Allocation per entry per
	// probe is the difference between O(1) and O(n) allocations per probe.
	scratch *arena.Allocator
}

// New builds an empty routing area. Pass routingarea.Infinity as width for
// an area with no fixed vertical capacity.
func New(id int, width, height geom.Decimal) *RoutingArea {
	return &RoutingArea{ID: id, Width: width, Height: height, xTree: geom.NewIntervalTree(), scratch: arena.New()}
}

// YMid is the absolute vertical midline of this area.
func (r *RoutingArea) YMid() geom.Decimal {
	return r.Height.Add(r.Width.Div(geom.MustDecimal("2")))
}

// Allocations returns every net/shield/blockage placement in this area, in
// ascending x order. A group-shielded ShieldedNetList was allocated as one
// unit (a single y-offset for the whole [shield, nets..., shield] stack);
// here it is expanded back into one Allocation per member, each offset
// computed by walking the same spacing-composition formula the bundle was
// built with.
func (r *RoutingArea) Allocations() []entities.Allocation {
	var out []entities.Allocation
	for _, e := range r.xTree.All() {
		a := e.Data.(entities.Allocation)
		snl, ok := a.Data.(*containers.ShieldedNetList)
		if !ok {
			out = append(out, a)
			continue
		}
		out = append(out, expandBundle(snl, a.Offset)...)
	}
	return out
}

func expandBundle(snl *containers.ShieldedNetList, baseOffset geom.Decimal) []entities.Allocation {
	if snl.Len() == 0 {
		return nil
	}
	out := make([]entities.Allocation, 0, snl.Len())
	first := snl.At(0)
	offset := baseOffset
	out = append(out, entities.NewAllocation(first, offset))
	width := first.Width()
	upperSpaceOfBelow := first.UpperSpace()
	for i := 1; i < snl.Len(); i++ {
		member := snl.At(i)
		offset = offset.Add(width).Add(geom.Max(upperSpaceOfBelow, member.LowerSpace()))
		out = append(out, entities.NewAllocation(member, offset))
		width = member.Width()
		upperSpaceOfBelow = member.UpperSpace()
	}
	return out
}

// AllocationsWithoutBlockage filters out Blockage placements.
func (r *RoutingArea) AllocationsWithoutBlockage() []entities.Allocation {
	all := r.Allocations()
	out := all[:0]
	for _, a := range all {
		if _, isBlockage := a.Data.(*entities.Blockage); !isBlockage {
			out = append(out, a)
		}
	}
	return out
}

// XOverlappedAllocations returns every Allocation whose x-interval
// overlaps xIv.
func (r *RoutingArea) XOverlappedAllocations(xIv geom.Interval) []entities.Allocation {
	entries := r.xTree.Overlap(xIv)
	out := make([]entities.Allocation, len(entries))
	for i, e := range entries {
		out[i] = e.Data.(entities.Allocation)
	}
	return out
}

// ySpaceEntry tags a y-interval-tree payload as either a real allocation or
// an auxiliary spacing reservation, mirroring the original's mixed
// Allocation/Space payload in its y-axis IntervalTree.
type ySpaceEntry struct {
	alloc *entities.Allocation
	space *entities.Space
}

// BuildYIntervalTree builds a fresh y-axis interval tree over allocs. When
// includeSpace is set, each allocation's upper/lower spacing reservation is
// also inserted as an auxiliary Space interval, letting ceiling queries
// distinguish "inside occupied width" from "inside reserved spacing".
func (r *RoutingArea) BuildYIntervalTree(allocs []entities.Allocation, includeSpace bool) *geom.IntervalTree {
	tree := geom.NewIntervalTree()
	r.scratch.Reset()
	for i := range allocs {
		a := allocs[i]
		tree.Insert(a.YInterval(), ySpaceEntry{alloc: r.scratch.Get(a)})

		if !includeSpace {
			continue
		}
		if a.LowerSpace().GreaterThan(geom.Zero) {
			sb := entities.Space{Type: entities.SpaceBelow, YMin: a.Offset.Sub(a.LowerSpace()), YMax: a.Offset}
			tree.Insert(sb.YInterval(), ySpaceEntry{space: &sb})
		}
		if a.UpperSpace().GreaterThan(geom.Zero) {
			sa := entities.Space{Type: entities.SpaceAbove, YMin: a.YMaxWithSpace().Sub(a.UpperSpace()), YMax: a.YMaxWithSpace()}
			tree.Insert(sa.YInterval(), ySpaceEntry{space: &sa})
		}
	}
	return tree
}

// YMaxSpaceMin returns the highest y_max_with_space among allocs and the
// smallest upper_space among the allocations achieving that maximum. Both
// are zero for an empty allocation list.
func (r *RoutingArea) YMaxSpaceMin(allocs []entities.Allocation) (yMax, spaceMin geom.Decimal) {
	if len(allocs) == 0 {
		return geom.Zero, geom.Zero
	}
	yMax = allocs[0].YMaxWithSpace()
	for _, a := range allocs[1:] {
		yMax = geom.Max(yMax, a.YMaxWithSpace())
	}
	spaceMin = Infinity
	for _, a := range allocs {
		if a.YMaxWithSpace().Equal(yMax) && a.UpperSpace().LessThan(spaceMin) {
			spaceMin = a.UpperSpace()
		}
	}
	return yMax, spaceMin
}

// GetCeilingSpace reports how much clearance sits directly below ceiling
// within x-interval xIv, and false if ceiling itself is not a valid place
// to measure from (it falls within an ABOVE-space reservation, or
// strictly inside an allocation's occupied width rather than at its base).
func (r *RoutingArea) GetCeilingSpace(ceiling geom.Decimal, xIv geom.Interval) (geom.Decimal, bool) {
	xOverlapped := r.XOverlappedAllocations(xIv)
	spaceTree := r.BuildYIntervalTree(xOverlapped, true)
	overlapped := spaceTree.At(ceiling)

	ceilingSpace := geom.Zero
	for _, e := range overlapped {
		entry := e.Data.(ySpaceEntry)
		if entry.space == nil {
			if !e.Interval.Begin.Equal(ceiling) {
				return geom.Decimal{}, false
			}
		} else if entry.space.Type == entities.SpaceAbove {
			return geom.Decimal{}, false
		}
		ceilingSpace = geom.Max(ceilingSpace, ceiling.Sub(e.Interval.Begin))
	}
	return ceilingSpace, true
}

// GetOffset returns the lowest feasible y-offset for alc below ceiling (or
// below r.Width if ceiling is nil), and false if no feasible offset exists.
func (r *RoutingArea) GetOffset(alc entities.Allocatable, ceiling *geom.Decimal) (geom.Decimal, bool) {
	c := r.Width
	if ceiling != nil {
		c = *ceiling
	}

	xOverlapped := r.XOverlappedAllocations(alc.XInterval())
	yTree := r.BuildYIntervalTree(xOverlapped, false)

	ceilingSpace, ok := r.GetCeilingSpace(c, alc.XInterval())
	if !ok {
		return geom.Decimal{}, false
	}

	belowEntries := yTree.OverlapExcludingPoint(geom.NewInterval(geom.Zero, c), c)
	allocsBelow := make([]entities.Allocation, len(belowEntries))
	for i, e := range belowEntries {
		allocsBelow[i] = *e.Data.(ySpaceEntry).alloc
	}

	yMax, spaceMin := r.YMaxSpaceMin(allocsBelow)
	offset := yMax.Sub(spaceMin).Add(geom.Max(spaceMin, alc.LowerSpace()))

	if offset.Add(alc.Width()).Add(geom.Max(alc.UpperSpace(), ceilingSpace)).GreaterThan(c) {
		return geom.Decimal{}, false
	}
	return offset, true
}

// Allocatable reports whether alc fits below ceiling.
func (r *RoutingArea) Allocatable(alc entities.Allocatable, ceiling *geom.Decimal) bool {
	_, ok := r.GetOffset(alc, ceiling)
	return ok
}

func (r *RoutingArea) placeRaw(o entities.Allocatable, offset geom.Decimal) geom.Decimal {
	a := entities.NewAllocation(o, offset)
	r.xTree.Insert(a.XInterval(), a)
	return a.YMaxWithSpace()
}

func (r *RoutingArea) allocateBlockage(b *entities.Blockage) (geom.Decimal, error) {
	xOverlapped := r.XOverlappedAllocations(b.XInterval())
	yTree := r.BuildYIntervalTree(xOverlapped, false)
	if len(yTree.Overlap(geom.NewInterval(b.YMin, b.YMax))) > 0 {
		return geom.Decimal{}, fmt.Errorf("%w: %v", routeerr.ErrBlockageCollision, b)
	}
	return r.placeRaw(b, b.YMin), nil
}

func (r *RoutingArea) allocateOne(o entities.Allocatable, ceiling *geom.Decimal) (geom.Decimal, error) {
	offset, ok := r.GetOffset(o, ceiling)
	if !ok {
		return geom.Decimal{}, fmt.Errorf("%w: %v at ceiling %v", routeerr.ErrAllocationInfeasible, o, ceiling)
	}
	return r.placeRaw(o, offset), nil
}

func (r *RoutingArea) allocateMembers(members []entities.Allocatable, ceiling *geom.Decimal) (geom.Decimal, error) {
	var yMax geom.Decimal
	for _, m := range members {
		switch m.(type) {
		case *entities.Net, *entities.Shield:
			v, err := r.allocateOne(m, ceiling)
			if err != nil {
				return geom.Decimal{}, err
			}
			yMax = v
		default:
			return geom.Decimal{}, fmt.Errorf("%w: %v should be a Net or Shield", routeerr.ErrInvalidInput, m)
		}
	}
	return yMax, nil
}

func (r *RoutingArea) allocateShieldedNetList(snl *containers.ShieldedNetList, ceiling *geom.Decimal) (geom.Decimal, error) {
	members := make([]entities.Allocatable, snl.Len())
	for i := 0; i < snl.Len(); i++ {
		members[i] = snl.At(i)
	}
	return r.allocateMembers(members, ceiling)
}

func (r *RoutingArea) allocateShieldDict(sd *containers.ShieldDict, ceiling *geom.Decimal) (geom.Decimal, error) {
	var yMaxes []geom.Decimal
	for _, t := range sd.ShieldTypes() {
		snl, _ := sd.Get(t)
		var yMax geom.Decimal
		var err error
		if snl.IsGroupNet() {
			// the whole wrapped stack is allocated as one unit, at one
			// offset, and expanded back into its members by Allocations.
			yMax, err = r.allocateOne(snl, ceiling)
		} else {
			yMax, err = r.allocateShieldedNetList(snl, ceiling)
		}
		if err != nil {
			return geom.Decimal{}, err
		}
		yMaxes = append(yMaxes, yMax)
	}
	return maxOf(yMaxes), nil
}

func (r *RoutingArea) allocateOID(o *containers.OID, ceiling *geom.Decimal) (geom.Decimal, error) {
	var yMaxes []geom.Decimal
	for _, sd := range o.ShieldDicts() {
		yMax, err := r.allocateShieldDict(sd, ceiling)
		if err != nil {
			return geom.Decimal{}, err
		}
		yMaxes = append(yMaxes, yMax)
	}
	return maxOf(yMaxes), nil
}

// Allocate places o (a Blockage, Net, Shield, flat net/shield list,
// ShieldedNetList, ShieldDict, or OID) into this area below ceiling,
// returning the highest y coordinate consumed including reserved spacing.
// It replaces the original's isinstance dispatch chain with a Go type
// switch over the same closed set of placeable kinds.
func (r *RoutingArea) Allocate(o any, ceiling *geom.Decimal) (geom.Decimal, error) {
	switch v := o.(type) {
	case *entities.Blockage:
		r.InitCeilings = append(r.InitCeilings, v.YMin, v.YMax)
		return r.allocateBlockage(v)
	case *entities.Net:
		return r.allocateOne(v, ceiling)
	case *entities.Shield:
		return r.allocateOne(v, ceiling)
	case []entities.Allocatable:
		return r.allocateMembers(v, ceiling)
	case *containers.ShieldedNetList:
		return r.allocateShieldedNetList(v, ceiling)
	case *containers.ShieldDict:
		return r.allocateShieldDict(v, ceiling)
	case *containers.OID:
		return r.allocateOID(v, ceiling)
	default:
		return geom.Decimal{}, fmt.Errorf("%w: %v should be Net, Shield, or a container", routeerr.ErrInvalidInput, o)
	}
}

func maxOf(ds []geom.Decimal) geom.Decimal {
	if len(ds) == 0 {
		return geom.Zero
	}
	m := ds[0]
	for _, d := range ds[1:] {
		m = geom.Max(m, d)
	}
	return m
}
