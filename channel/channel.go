// Package channel implements the single-pass channel routing heuristics
// that place OverlappedIntervalDicts into a fixed set of routing areas:
// Left-Edge (LE), width-then-position priority (CAP), and criticality- and
// congestion-aware priority (CCAP).
package channel

import (
	"container/heap"
	"math/rand"
	"sort"

	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/routingarea"
)

// negInfinity stands in for the original's Decimal(float("-inf")) left-edge
// sentinel; shopspring/decimal has no infinity value.
var negInfinity = geom.MustDecimal("-1000000000000000000")

// gcoRandomSeed re-seeds the GCO random area shuffle deterministically on
// every call, matching the original's random.seed(0) ahead of each shuffle.
const gcoRandomSeed = 0

func removeOID(list []*containers.OID, target *containers.OID) []*containers.OID {
	for i, o := range list {
		if o == target {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// CapSort orders oids widest-first, left-most-first among equal widths, via
// a single total order rather than a hand-rolled three-way comparator, so
// ties can never flip depending on call order (see DESIGN.md Open Question
// decision 4).
func CapSort(oids []*containers.OID) []*containers.OID {
	out := make([]*containers.OID, len(oids))
	copy(out, oids)
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].Width(), out[j].Width()
		if !wi.Equal(wj) {
			return wi.GreaterThan(wj)
		}
		return out[i].XInterval().Begin.LessThan(out[j].XInterval().Begin)
	})
	return out
}

// MaxDensityZones finds the highest total net width ever simultaneously
// in flight across oids' x-intervals, and every x-zone achieving it, by a
// sweep-line over begin/end events.
func MaxDensityZones(oids []*containers.OID) (geom.Decimal, []geom.Interval) {
	type event struct {
		x       geom.Decimal
		oid     *containers.OID
		isBegin bool
	}
	events := make([]event, 0, len(oids)*2)
	for _, o := range oids {
		xi := o.XInterval()
		events = append(events, event{x: xi.Begin, oid: o, isBegin: true})
		events = append(events, event{x: xi.End, oid: o, isBegin: false})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].x.LessThan(events[j].x) })

	var conflictNets []*containers.OID
	maxDensity := geom.Zero
	var startX *geom.Decimal
	var zones []geom.Interval

	i := 0
	for i < len(events) {
		j := i
		for j < len(events) && events[j].x.Equal(events[i].x) {
			j++
		}
		k := events[i].x
		lastWasBegin := false
		for _, e := range events[i:j] {
			if e.isBegin {
				conflictNets = append(conflictNets, e.oid)
			} else {
				conflictNets = removeOID(conflictNets, e.oid)
			}
			lastWasBegin = e.isBegin
		}
		i = j

		if len(conflictNets) == 0 {
			if startX != nil {
				zones = append(zones, geom.NewInterval(*startX, k))
				startX = nil
			}
			continue
		}
		density := geom.Zero
		for _, n := range conflictNets {
			density = density.Add(n.Width())
		}
		if lastWasBegin {
			if maxDensity.LessThan(density) {
				maxDensity = density
				kk := k
				startX = &kk
				zones = nil
			} else if maxDensity.Equal(density) {
				kk := k
				startX = &kk
			}
		} else if startX != nil {
			zones = append(zones, geom.NewInterval(*startX, k))
			startX = nil
		}
	}
	return maxDensity, zones
}

// IsDesiredNet reports whether oid may be placed next given the current
// left-edge scan position availableStartX: it is rejected only if some
// max-density zone begins strictly between availableStartX and oid's own
// begin, since placing it would lock in a sub-optimal crossing of that zone.
func IsDesiredNet(availableStartX geom.Decimal, densityZones []geom.Interval, oid *containers.OID) bool {
	for _, z := range densityZones {
		if availableStartX.LessThan(z.Begin) && z.Begin.LessThan(oid.XInterval().Begin) {
			return false
		}
	}
	return true
}

// GetOptimalRoutingAreas returns every area whose vertical midline falls
// within oid's own pin-derived [YMidLower, YMidUpper] band.
func GetOptimalRoutingAreas(oid *containers.OID, ras []*routingarea.RoutingArea) []*routingarea.RoutingArea {
	var out []*routingarea.RoutingArea
	lower, upper := oid.YMidLower(), oid.YMidUpper()
	for _, ra := range ras {
		mid := ra.YMid()
		if !lower.GreaterThan(mid) && !mid.GreaterThan(upper) {
			out = append(out, ra)
		}
	}
	return out
}

// GetBestRoutingArea returns whichever of the two areas closest (by
// midline) to oid's midline gives the smaller vertical wirelength.
func GetBestRoutingArea(oid *containers.OID, ras []*routingarea.RoutingArea) *routingarea.RoutingArea {
	type scored struct {
		ra   *routingarea.RoutingArea
		diff geom.Decimal
	}
	mid := oid.YMid()
	scoreds := make([]scored, len(ras))
	for i, ra := range ras {
		scoreds[i] = scored{ra: ra, diff: ra.YMid().Sub(mid).Abs()}
	}
	sort.SliceStable(scoreds, func(i, j int) bool { return scoreds[i].diff.LessThan(scoreds[j].diff) })

	first := scoreds[0].ra
	second := first
	if len(scoreds) > 1 {
		second = scoreds[1].ra
	}
	firstY, secondY := first.YMid(), second.YMid()
	if oid.VerticalWirelength(&firstY).LessThan(oid.VerticalWirelength(&secondY)) {
		return first
	}
	return second
}

// WirelengthPriority scores each oid by how much better targetGapHeight is
// than the better of its two closest candidate heights (that wirelength
// minus the wirelength at targetGapHeight; higher means the target suits
// the oid better), for use ranking remaining oids against one chosen
// target area.
func WirelengthPriority(oids []*containers.OID, gapHeights []geom.Decimal, targetGapHeight geom.Decimal) []geom.Decimal {
	out := make([]geom.Decimal, len(oids))
	if len(gapHeights) == 0 {
		for i := range out {
			out[i] = geom.Zero
		}
		return out
	}

	for idx, o := range oids {
		mid := o.YMid()
		type diffed struct {
			h    geom.Decimal
			diff geom.Decimal
		}
		diffs := make([]diffed, len(gapHeights))
		for i, h := range gapHeights {
			diffs[i] = diffed{h: h, diff: h.Sub(mid).Abs()}
		}
		sort.SliceStable(diffs, func(i, j int) bool { return diffs[i].diff.LessThan(diffs[j].diff) })

		first := diffs[0].h
		second := first
		if len(diffs) > 1 {
			second = diffs[1].h
		}
		closest := geom.Min(o.VerticalWirelength(&first), o.VerticalWirelength(&second))
		target := o.VerticalWirelength(&targetGapHeight)
		out[idx] = closest.Sub(target)
	}
	return out
}

// CriticalityBasedPriority ranks remainingOids for CCAP: widest first, then
// by distance priority (how much better targetRa is than each oid's own best
// candidate area, see WirelengthPriority) descending, then left-most first. Distance priority is
// recomputed into a fresh scoring map on every call rather than stashed on
// the OIDs themselves, so a later, differently-ordered call can't see a
// stale score from an earlier outer iteration.
func CriticalityBasedPriority(remainingOids []*containers.OID, remainingRas []*routingarea.RoutingArea, targetRa *routingarea.RoutingArea) []*containers.OID {
	gapHeights := make([]geom.Decimal, len(remainingRas))
	for i, ra := range remainingRas {
		gapHeights[i] = ra.YMid()
	}
	priorities := WirelengthPriority(remainingOids, gapHeights, targetRa.YMid())
	distPriority := make(map[*containers.OID]geom.Decimal, len(remainingOids))
	for i, o := range remainingOids {
		distPriority[o] = priorities[i]
	}

	out := make([]*containers.OID, len(remainingOids))
	copy(out, remainingOids)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Width().Equal(b.Width()) {
			return a.Width().GreaterThan(b.Width())
		}
		if !distPriority[a].Equal(distPriority[b]) {
			return distPriority[a].GreaterThan(distPriority[b])
		}
		return a.XInterval().Begin.LessThan(b.XInterval().Begin)
	})
	return out
}

// PrioritizeRoutingAreas reorders ras for the next area pick: either a
// deterministic fixed-seed shuffle, or (default) descending/ascending by
// how much global congestion each area's optimal-OID set puts on it.
func PrioritizeRoutingAreas(ras []*routingarea.RoutingArea, remainingOids []*containers.OID, useRandom, congestionFirst bool) []*routingarea.RoutingArea {
	out := make([]*routingarea.RoutingArea, len(ras))
	copy(out, ras)

	if useRandom {
		rng := rand.New(rand.NewSource(gcoRandomSeed))
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	for _, ra := range out {
		ra.Congestion = 0
	}
	for _, oid := range remainingOids {
		opt := GetOptimalRoutingAreas(oid, out)
		if len(opt) == 0 {
			opt = []*routingarea.RoutingArea{GetBestRoutingArea(oid, out)}
		}
		share := 1.0 / float64(len(opt))
		for _, ra := range opt {
			ra.Congestion += share
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if congestionFirst {
			return out[i].Congestion > out[j].Congestion
		}
		return out[i].Congestion < out[j].Congestion
	})
	return out
}

// LeftEdge places oids into ras left-to-right within each area, area by
// area, relaxing the ceiling to the next recorded obstacle height whenever
// a full left-to-right pass places nothing under the current ceiling.
func LeftEdge(oids []*containers.OID, ras []*routingarea.RoutingArea, useGco bool) (routed []*routingarea.RoutingArea, remainingRas []*routingarea.RoutingArea, remainingOids []*containers.OID) {
	remainingOids = append([]*containers.OID(nil), oids...)
	sort.SliceStable(remainingOids, func(i, j int) bool {
		return remainingOids[i].XInterval().Begin.LessThan(remainingOids[j].XInterval().Begin)
	})
	remainingRas = append([]*routingarea.RoutingArea(nil), ras...)

	for len(remainingOids) > 0 {
		if len(remainingRas) == 0 {
			break
		}
		if useGco {
			remainingRas = PrioritizeRoutingAreas(remainingRas, remainingOids, false, true)
		}
		targetRa := remainingRas[0]
		remainingRas = remainingRas[1:]
		routed = append(routed, targetRa)

		q := ceilingHeap(append([]geom.Decimal(nil), targetRa.InitCeilings...))
		heap.Init(&q)

		for {
			var ceiling *geom.Decimal
			if q.Len() > 0 {
				c := q[0]
				ceiling = &c
			}

			x := negInfinity
			var placed []*containers.OID
			for _, oid := range remainingOids {
				if x.LessThan(oid.XInterval().Begin) && targetRa.Allocatable(oid, ceiling) {
					targetRa.Allocate(oid, ceiling)
					x = oid.XInterval().End
					placed = append(placed, oid)
				}
			}

			if len(placed) == 0 {
				if ceiling == nil {
					break
				}
				heap.Pop(&q)
				continue
			}
			for _, oid := range placed {
				remainingOids = removeOID(remainingOids, oid)
			}
		}
	}
	return routed, remainingRas, remainingOids
}

// Cap places oids ordered by CapSort, favoring the width-maximizing
// max-density zones at each scan position (IsDesiredNet).
func Cap(oids []*containers.OID, ras []*routingarea.RoutingArea, useGco bool) (routed []*routingarea.RoutingArea, remainingRas []*routingarea.RoutingArea, remainingOids []*containers.OID) {
	remainingOids = CapSort(oids)
	remainingRas = append([]*routingarea.RoutingArea(nil), ras...)

	for len(remainingOids) > 0 {
		if len(remainingRas) == 0 {
			break
		}
		if useGco {
			remainingRas = PrioritizeRoutingAreas(remainingRas, remainingOids, false, true)
		}
		targetRa := remainingRas[0]
		remainingRas = remainingRas[1:]
		routed = append(routed, targetRa)

		q := ceilingHeap(append([]geom.Decimal(nil), targetRa.InitCeilings...))
		heap.Init(&q)

		for {
			var ceiling *geom.Decimal
			if q.Len() > 0 {
				c := q[0]
				ceiling = &c
			}

			oidIsRouted := false
			x := negInfinity
			_, zones := MaxDensityZones(remainingOids)
			var newCeilings []geom.Decimal

			for {
				placedOne := false
				for _, oid := range remainingOids {
					if x.LessThan(oid.XInterval().Begin) && IsDesiredNet(x, zones, oid) && targetRa.Allocatable(oid, ceiling) {
						height, _ := targetRa.Allocate(oid, ceiling)
						newCeilings = append(newCeilings, height)
						x = oid.XInterval().End
						remainingOids = removeOID(remainingOids, oid)
						placedOne = true
						oidIsRouted = true
						break
					}
				}
				if !placedOne {
					break
				}
			}

			if !oidIsRouted {
				if ceiling == nil {
					break
				}
				heap.Pop(&q)
				continue
			}
			for _, h := range newCeilings {
				heap.Push(&q, h)
			}
		}
	}
	return routed, remainingRas, remainingOids
}

// Ccap places oids area by area, re-ranking both the remaining areas (by
// congestion or a fixed-seed shuffle) and the remaining oids (by
// criticality against the freshly chosen area) before each area's scan.
func Ccap(oids []*containers.OID, ras []*routingarea.RoutingArea, useRandom, congestionFirst bool) (routed []*routingarea.RoutingArea, remainingRas []*routingarea.RoutingArea, remainingOids []*containers.OID) {
	remainingOids = append([]*containers.OID(nil), oids...)
	remainingRas = append([]*routingarea.RoutingArea(nil), ras...)

	for len(remainingOids) > 0 {
		if len(remainingRas) == 0 {
			break
		}
		remainingRas = PrioritizeRoutingAreas(remainingRas, remainingOids, useRandom, congestionFirst)
		targetRa := remainingRas[0]
		remainingRas = remainingRas[1:]
		routed = append(routed, targetRa)

		q := ceilingHeap(append([]geom.Decimal(nil), targetRa.InitCeilings...))
		heap.Init(&q)

		remainingOids = CriticalityBasedPriority(remainingOids, remainingRas, targetRa)

		for {
			var ceiling *geom.Decimal
			if q.Len() > 0 {
				c := q[0]
				ceiling = &c
			}

			oidIsRouted := false
			x := negInfinity
			_, zones := MaxDensityZones(remainingOids)
			var newCeilings []geom.Decimal

			for {
				placedOne := false
				for _, oid := range remainingOids {
					if x.LessThan(oid.XInterval().Begin) && IsDesiredNet(x, zones, oid) && targetRa.Allocatable(oid, ceiling) {
						height, _ := targetRa.Allocate(oid, ceiling)
						newCeilings = append(newCeilings, height)
						x = oid.XInterval().End
						remainingOids = removeOID(remainingOids, oid)
						placedOne = true
						oidIsRouted = true
						break
					}
				}
				if !placedOne {
					break
				}
			}

			if !oidIsRouted {
				if ceiling == nil {
					break
				}
				heap.Pop(&q)
				continue
			}
			for _, h := range newCeilings {
				heap.Push(&q, h)
			}
		}
	}
	return routed, remainingRas, remainingOids
}
