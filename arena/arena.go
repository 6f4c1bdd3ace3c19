// Package arena provides a chunked bump allocator for entities.Allocation
// values, adapted from the chunk-allocation idea behind a trie-node pool:
// amortize one allocation over many placements instead of allocating each
// Allocation on the heap individually. The router's ceiling-probing loops
// (repeated get_offset calls during channel routing) construct and discard
// many candidate Allocations per net, which makes that amortization worth
// having even in a single-threaded scheduler with no pool contention to
// avoid.
package arena

import "github.com/edalab/gcr/entities"

const defaultChunkSize = 4096

// Allocator hands out *entities.Allocation values from pre-allocated
// chunks. It is not safe for concurrent use; the router's scheduler runs
// single-threaded by design, so no locking is needed.
type Allocator struct {
	chunks       [][]entities.Allocation
	chunkSize    int
	currentIndex int
}

// New creates an Allocator with the default chunk size.
func New() *Allocator {
	return &Allocator{chunkSize: defaultChunkSize}
}

// NewWithChunkSize creates an Allocator with a caller-chosen chunk size,
// mainly for tests that want to exercise the chunk-rollover path cheaply.
func NewWithChunkSize(chunkSize int) *Allocator {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Allocator{chunkSize: chunkSize}
}

// Get returns a pointer to a fresh Allocation initialized to v.
func (a *Allocator) Get(v entities.Allocation) *entities.Allocation {
	if len(a.chunks) == 0 || a.currentIndex >= a.chunkSize {
		a.chunks = append(a.chunks, make([]entities.Allocation, a.chunkSize))
		a.currentIndex = 0
	}
	chunk := a.chunks[len(a.chunks)-1]
	p := &chunk[a.currentIndex]
	*p = v
	a.currentIndex++
	return p
}

// Reset discards every chunk, freeing the allocator's memory for garbage
// collection. The allocator is usable again immediately after.
func (a *Allocator) Reset() {
	a.chunks = nil
	a.currentIndex = 0
}

// Len returns the number of Allocations handed out since the last Reset.
func (a *Allocator) Len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	return (len(a.chunks)-1)*a.chunkSize + a.currentIndex
}
