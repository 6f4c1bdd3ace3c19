// Package schedule assigns multi-area Bundles to sliding windows of
// consecutive routing areas before the single-area channel algorithms run.
package schedule

import (
	"sort"

	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/routingarea"
)

// GreedyAllocateBundles places each bundle, widest-pin-count first, into the
// run of len(bundle) consecutive routing areas that minimizes its total
// vertical wirelength, and records the placement's ceilings on each area so
// later channel routing treats the bundle as a fixed obstacle. It returns
// the names of bundles for which no consecutive window fit every member.
func GreedyAllocateBundles(bundles []*containers.Bundle, ras []*routingarea.RoutingArea) []string {
	sorted := make([]*containers.Bundle, len(bundles))
	copy(sorted, bundles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Pins()) > len(sorted[j].Pins())
	})

	gapHeights := make([]geom.Decimal, len(ras))
	for i, ra := range ras {
		gapHeights[i] = ra.Height
	}

	var unallocatable []string

	for _, b := range sorted {
		n := b.Len()
		if n == 0 || n > len(ras) {
			unallocatable = append(unallocatable, b.Name)
			continue
		}

		bestVWL := routingarea.Infinity
		bestStart := -1

		for i := 0; i+n <= len(ras); i++ {
			assignable := true
			for j, o := range b.OIDs {
				if !ras[i+j].Allocatable(o, nil) {
					assignable = false
					break
				}
			}
			if !assignable {
				continue
			}

			vwl, err := b.VerticalWirelengthWithMultiY(gapHeights[i : i+n])
			if err != nil {
				continue
			}
			if bestStart == -1 || vwl.LessThan(bestVWL) {
				bestVWL = vwl
				bestStart = i
			}
		}

		if bestStart == -1 {
			unallocatable = append(unallocatable, b.Name)
			continue
		}

		for j, o := range b.OIDs {
			ra := ras[bestStart+j]
			offset, _ := ra.GetOffset(o, nil)
			yMaxWithSpace, _ := ra.Allocate(o, nil)
			ra.InitCeilings = append(ra.InitCeilings, offset, yMaxWithSpace)
		}
	}

	return unallocatable
}
