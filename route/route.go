// Package route orchestrates the two-step routing flow: nets overlapping a
// blockage column route globally across gaps, everything else routes
// locally within its column's subchannels, and whatever a column's
// subchannels cannot fit falls back to global routing.
package route

import (
	"fmt"

	"github.com/edalab/gcr/channel"
	"github.com/edalab/gcr/config"
	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/netio"
	"github.com/edalab/gcr/preprocess"
	"github.com/edalab/gcr/routeerr"
	"github.com/edalab/gcr/routingarea"
	"github.com/edalab/gcr/schedule"
)

// Algorithm selects which channel-routing heuristic assigns OIDs to areas.
type Algorithm string

const (
	AlgorithmLeftEdge Algorithm = "le"
	AlgorithmCap      Algorithm = "cap"
	AlgorithmCcap     Algorithm = "ccap"
)

// Summary reports one routing pass's outcome for a caller to print or save.
type Summary struct {
	RoutingAreasUsed        int
	TotalVerticalWirelength geom.Decimal
}

// DivideNetsIntoLocalOrGlobal splits netGroupDict by whether any member net's
// x-interval overlaps a blockage column: a group that crosses a blockage
// routes globally, one that never does routes locally. A group whose nets
// disagree (some crossing, some not) is a malformed input.
func DivideNetsIntoLocalOrGlobal(netGroupDict *containers.OrderedMap[string, []*entities.Net], blockageXIntervals []geom.Interval) (global, local *containers.OrderedMap[string, []*entities.Net], err error) {
	global = containers.NewOrderedMap[string, []*entities.Net]()
	local = containers.NewOrderedMap[string, []*entities.Net]()

	for _, name := range netGroupDict.Keys() {
		nl, _ := netGroupDict.Get(name)
		var globalNl, localNl []*entities.Net
		for _, n := range nl {
			if overlapsAny(n.XInterval(), blockageXIntervals) {
				globalNl = append(globalNl, n)
			} else {
				localNl = append(localNl, n)
			}
		}
		if len(globalNl) > 0 && len(localNl) > 0 {
			return nil, nil, fmt.Errorf("%w: net group %q has nets both crossing and not crossing a blockage", routeerr.ErrMixedLocalGlobal, name)
		}
		if len(globalNl) > 0 {
			global.Set(name, globalNl)
		} else {
			local.Set(name, localNl)
		}
	}
	return global, local, nil
}

func overlapsAny(iv geom.Interval, others []geom.Interval) bool {
	for _, o := range others {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}

// DivideNetsByBlock assigns each net group to the column lying strictly
// before the first blockage column whose net entirely fits before it, or
// to the last column (after every blockage) otherwise, mirroring the
// original's "first zone this net's end is strictly left of" rule. All nets
// in a group must agree on a column.
func DivideNetsByBlock(netGroupDict *containers.OrderedMap[string, []*entities.Net], blockageXIntervals []geom.Interval) (map[int]*containers.OrderedMap[string, []*entities.Net], error) {
	byColumn := make(map[int]*containers.OrderedMap[string, []*entities.Net])

	for _, name := range netGroupDict.Keys() {
		nl, _ := netGroupDict.Get(name)
		col := -1
		for _, n := range nl {
			c := columnOf(n, blockageXIntervals)
			if col == -1 {
				col = c
			} else if col != c {
				return nil, fmt.Errorf("%w: net group %q spans more than one column", routeerr.ErrInvalidInput, name)
			}
		}
		if byColumn[col] == nil {
			byColumn[col] = containers.NewOrderedMap[string, []*entities.Net]()
		}
		byColumn[col].Set(name, nl)
	}
	return byColumn, nil
}

func columnOf(n *entities.Net, blockageXIntervals []geom.Interval) int {
	for i, bz := range blockageXIntervals {
		if n.XInterval().End.LessThan(bz.Begin) {
			return i
		}
	}
	return len(blockageXIntervals)
}

// GetUnallocatableNetDictAfterDivision returns every net group that cannot
// fit targetAreaWidth even after trunk division, because its own spacing
// (and shield, if required) already consumes the whole area.
func GetUnallocatableNetDictAfterDivision(netGroupDict *containers.OrderedMap[string, []*entities.Net], targetAreaWidth, shieldWidth geom.Decimal) *containers.OrderedMap[string, []*entities.Net] {
	two := geom.MustDecimal("2")
	out := containers.NewOrderedMap[string, []*entities.Net]()

	for _, name := range netGroupDict.Keys() {
		nl, _ := netGroupDict.Get(name)
		for _, n := range nl {
			var allocatableWidthMax geom.Decimal
			if n.ShieldReq.IsNone() {
				allocatableWidthMax = targetAreaWidth.Sub(n.UpperSpace().Add(n.LowerSpace()))
			} else {
				allocatableWidthMax = targetAreaWidth.Sub(
					n.UpperSpace().Mul(two).Add(n.LowerSpace().Mul(two)).Add(shieldWidth.Mul(two)),
				)
			}
			if !allocatableWidthMax.GreaterThan(geom.Zero) {
				out.Set(name, nl)
				break
			}
		}
	}
	return out
}

// RunOIDRouting places oids into ras using the named channel algorithm,
// returning every area of ras (those the algorithm routed into, then the
// untouched rest) and any oids that could not be placed anywhere.
func RunOIDRouting(oids []*containers.OID, ras []*routingarea.RoutingArea, algorithm Algorithm, useGco bool) (totalRas []*routingarea.RoutingArea, remainingOids []*containers.OID, err error) {
	var used, remaining []*routingarea.RoutingArea
	switch algorithm {
	case AlgorithmLeftEdge:
		used, remaining, remainingOids = channel.LeftEdge(oids, ras, useGco)
	case AlgorithmCap:
		used, remaining, remainingOids = channel.Cap(oids, ras, useGco)
	case AlgorithmCcap:
		used, remaining, remainingOids = channel.Ccap(oids, ras, false, true)
	default:
		return nil, nil, fmt.Errorf("%w: unknown algorithm %q", routeerr.ErrInvalidInput, algorithm)
	}
	return append(used, remaining...), remainingOids, nil
}

// GlobalRouting runs the bundle-then-OID two-phase placement across gaps,
// grounded on the original's global_routing.run.
type GlobalRouting struct{}

// Run splits netGroupDict into OIDs/Bundles sized for one gap, schedules
// the Bundles across consecutive gaps, then places the OIDs with the
// chosen algorithm. It errors if any bundle or OID has no feasible home.
func (GlobalRouting) Run(netGroupDict *containers.OrderedMap[string, []*entities.Net], shieldWidth geom.Decimal, gaps []*routingarea.RoutingArea, algorithm Algorithm, useGco bool) ([]*routingarea.RoutingArea, error) {
	if len(gaps) == 0 {
		return nil, fmt.Errorf("%w: no gaps available for global routing", routeerr.ErrInvalidInput)
	}
	oids, bundles, err := preprocess.Run(netGroupDict, shieldWidth, gaps[0])
	if err != nil {
		return nil, err
	}

	unallocatableBundles := schedule.GreedyAllocateBundles(bundles, gaps)
	if len(unallocatableBundles) > 0 {
		return nil, fmt.Errorf("%w: bundles %v", routeerr.ErrUnplaceableBundle, unallocatableBundles)
	}

	totalRas, remainingOids, err := RunOIDRouting(oids, gaps, algorithm, useGco)
	if err != nil {
		return nil, err
	}
	if len(remainingOids) > 0 {
		names := make([]string, len(remainingOids))
		for i, o := range remainingOids {
			names[i] = o.Name
		}
		return nil, fmt.Errorf("%w: %v", routeerr.ErrUnplaceableOID, names)
	}
	return totalRas, nil
}

// BuildSubchannels generates every local-routing column's subchannel ladder
// from the problem settings and pre-allocates each subchannel's share of
// the reserved-area keep-outs as entities.Blockage placements, grounded on
// local_routing.read_blockages: a reserved area lands in subchannel i of
// column col only where its x-interval overlaps that column's x-interval
// and its y-interval overlaps [subchannel_height(i), subchannel_height(i)
// + subchannel_width), and the resulting Blockage is expressed in the
// subchannel's own local y-coordinates (offset from that subchannel's
// baseline), not the reserved area's absolute y.
func BuildSubchannels(ps *config.ProblemSettings) (map[int][]*routingarea.RoutingArea, error) {
	reservedAreas, err := netio.ReadReservedAreas(ps.ReservedAreasFile, ps.TargetLayer)
	if err != nil {
		return nil, err
	}

	result := make(map[int][]*routingarea.RoutingArea, ps.NumSubchannelCols())
	for col := 0; col < ps.NumSubchannelCols(); col++ {
		subchannels := ps.GenerateSubchannels()
		colXIv := ps.SubchannelXIntervals[col]

		for i, sc := range subchannels {
			subgapYIv := geom.NewInterval(ps.SubchannelHeight(i), ps.SubchannelHeight(i).Add(ps.SubchannelWidth()))

			for _, ra := range reservedAreas {
				if !colXIv.OverlapSize(ra.XInterval).GreaterThan(geom.Zero) {
					continue
				}
				if !subgapYIv.OverlapSize(ra.YInterval).GreaterThan(geom.Zero) {
					continue
				}

				blockXMin := geom.Max(colXIv.Begin, ra.XInterval.Begin)
				blockXMax := geom.Min(colXIv.End, ra.XInterval.End)
				blockYMin := geom.Max(subgapYIv.Begin, ra.YInterval.Begin).Sub(subgapYIv.Begin)
				blockYMax := geom.Min(subgapYIv.End, ra.YInterval.End).Sub(subgapYIv.Begin)

				b := entities.NewBlockage(blockXMin, blockXMax, blockYMin, blockYMax)
				if _, err := sc.Allocate(b, nil); err != nil {
					return nil, fmt.Errorf("route: column %d subchannel %d: %w", col, i, err)
				}
			}
		}

		result[col] = subchannels
	}

	return result, nil
}

// LocalRouting routes each blockage-free column's net groups into that
// column's pre-built subchannels (blockages from reserved areas already
// allocated into them, typically by BuildSubchannels), grounded on
// local_routing.run.
type LocalRouting struct{}

// Run routes netGroupDict column by column. subchannelsByColumn supplies
// each column's subchannel RoutingAreas (with reserved-area blockages
// already allocated, see BuildSubchannels); subchannelWidth is used only to
// pre-filter net groups that cannot possibly fit any subchannel even after
// division. Nets that cannot be routed in their column are returned for the
// caller to re-route globally, matching the original's fallback behavior.
func (LocalRouting) Run(
	netGroupDict *containers.OrderedMap[string, []*entities.Net],
	blockageXIntervals []geom.Interval,
	subchannelWidth, shieldWidth geom.Decimal,
	subchannelsByColumn map[int][]*routingarea.RoutingArea,
	algorithm Algorithm, useGco bool,
) (map[int][]*routingarea.RoutingArea, *containers.OrderedMap[string, []*entities.Net], error) {
	unallocatable := containers.NewOrderedMap[string, []*entities.Net]()

	removed := GetUnallocatableNetDictAfterDivision(netGroupDict, subchannelWidth, shieldWidth)
	filtered := containers.NewOrderedMap[string, []*entities.Net]()
	for _, name := range netGroupDict.Keys() {
		nl, _ := netGroupDict.Get(name)
		if _, skip := removed.Get(name); skip {
			unallocatable.Set(name, nl)
			continue
		}
		filtered.Set(name, nl)
	}

	byColumn, err := DivideNetsByBlock(filtered, blockageXIntervals)
	if err != nil {
		return nil, nil, err
	}

	result := make(map[int][]*routingarea.RoutingArea)
	for col, subchannels := range subchannelsByColumn {
		colNetGroupDict, ok := byColumn[col]
		if !ok {
			result[col] = subchannels
			continue
		}

		oids, bundles, err := preprocess.Run(colNetGroupDict, shieldWidth, subchannels[0])
		if err != nil {
			return nil, nil, err
		}

		unallocatableBundleNames := schedule.GreedyAllocateBundles(bundles, subchannels)
		for _, name := range unallocatableBundleNames {
			nl, _ := colNetGroupDict.Get(name)
			unallocatable.Set(name, nl)
		}

		totalRas, remainingOids, err := RunOIDRouting(oids, subchannels, algorithm, useGco)
		if err != nil {
			return nil, nil, err
		}
		for _, oid := range remainingOids {
			nl, _ := colNetGroupDict.Get(oid.Name)
			unallocatable.Set(oid.Name, nl)
		}
		result[col] = totalRas
	}

	return result, unallocatable, nil
}

// TwoStepRouting runs local routing first, promotes anything it could not
// place to global routing, then runs global routing, matching
// src/main.py:two_step_routing.
func TwoStepRouting(
	netGroupDict *containers.OrderedMap[string, []*entities.Net],
	blockageXIntervals []geom.Interval,
	subchannelWidth, shieldWidth geom.Decimal,
	subchannelsByColumn map[int][]*routingarea.RoutingArea,
	gaps []*routingarea.RoutingArea,
	algorithm Algorithm, useGco bool,
) (subchannels map[int][]*routingarea.RoutingArea, usedGaps []*routingarea.RoutingArea, err error) {
	globalNetGroupDict, localNetGroupDict, err := DivideNetsIntoLocalOrGlobal(netGroupDict, blockageXIntervals)
	if err != nil {
		return nil, nil, err
	}

	subchannels, unallocatableLocal, err := (LocalRouting{}).Run(
		localNetGroupDict, blockageXIntervals, subchannelWidth, shieldWidth, subchannelsByColumn, algorithm, useGco,
	)
	if err != nil {
		return nil, nil, err
	}

	for _, name := range unallocatableLocal.Keys() {
		nl, _ := unallocatableLocal.Get(name)
		if _, exists := globalNetGroupDict.Get(name); exists {
			return nil, nil, fmt.Errorf("%w: net group %q already routes globally", routeerr.ErrInvalidInput, name)
		}
		globalNetGroupDict.Set(name, nl)
	}

	usedGaps, err = (GlobalRouting{}).Run(globalNetGroupDict, shieldWidth, gaps, algorithm, useGco)
	if err != nil {
		return nil, nil, err
	}
	return subchannels, usedGaps, nil
}

// Summarize computes the routing-area count and total vertical wirelength
// across a finished set of routing areas, for reporting. Each net's
// wirelength is measured against the absolute y it actually landed at
// (the area's baseline height plus its offset within the area), not its
// own pin midpoint.
func Summarize(ras []*routingarea.RoutingArea) Summary {
	used := 0
	total := geom.Zero
	for _, ra := range ras {
		allocs := ra.AllocationsWithoutBlockage()
		if len(allocs) == 0 {
			continue
		}
		used++
		for _, a := range allocs {
			n, ok := a.Data.(*entities.Net)
			if !ok {
				continue
			}
			y := ra.Height.Add(a.Offset)
			total = total.Add(n.VerticalWirelength(&y))
		}
	}
	return Summary{RoutingAreasUsed: used, TotalVerticalWirelength: total}
}
