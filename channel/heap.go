package channel

import "github.com/edalab/gcr/geom"

// ceilingHeap is a min-heap of candidate ceiling heights, mirroring the
// original's heapq-backed height_limit_queue: the channel algorithms always
// want the lowest remaining ceiling relaxation next.
type ceilingHeap []geom.Decimal

func (h ceilingHeap) Len() int            { return len(h) }
func (h ceilingHeap) Less(i, j int) bool  { return h[i].LessThan(h[j]) }
func (h ceilingHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ceilingHeap) Push(x interface{}) { *h = append(*h, x.(geom.Decimal)) }
func (h *ceilingHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
