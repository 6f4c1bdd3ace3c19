package arena

import (
	"testing"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

func TestGetReturnsDistinctPointers(t *testing.T) {
	a := NewWithChunkSize(2)
	n := entities.NewNetFromBounds("A_0", 1, geom.MustDecimal("1"), geom.MustDecimal("0"), geom.MustDecimal("0"), geom.MustDecimal("5"))

	p1 := a.Get(entities.NewAllocation(n, geom.MustDecimal("0")))
	p2 := a.Get(entities.NewAllocation(n, geom.MustDecimal("1")))
	if p1 == p2 {
		t.Fatal("expected distinct pointers for distinct Get calls")
	}
	if !p1.Offset.Equal(geom.MustDecimal("0")) || !p2.Offset.Equal(geom.MustDecimal("1")) {
		t.Errorf("offsets = %s, %s; want 0, 1", p1.Offset, p2.Offset)
	}
}

func TestGetRollsOverChunks(t *testing.T) {
	a := NewWithChunkSize(2)
	n := entities.NewNetFromBounds("A_0", 1, geom.MustDecimal("1"), geom.MustDecimal("0"), geom.MustDecimal("0"), geom.MustDecimal("5"))

	var ptrs []*entities.Allocation
	for i := 0; i < 5; i++ {
		ptrs = append(ptrs, a.Get(entities.NewAllocation(n, geom.Zero)))
	}
	if a.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", a.Len())
	}
	seen := make(map[*entities.Allocation]bool)
	for _, p := range ptrs {
		if seen[p] {
			t.Fatal("expected all pointers to be distinct across chunk rollover")
		}
		seen[p] = true
	}
}

func TestResetClearsChunks(t *testing.T) {
	a := NewWithChunkSize(4)
	n := entities.NewNetFromBounds("A_0", 1, geom.MustDecimal("1"), geom.MustDecimal("0"), geom.MustDecimal("0"), geom.MustDecimal("5"))
	a.Get(entities.NewAllocation(n, geom.Zero))
	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", a.Len())
	}
}
