package channel

import (
	"testing"

	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/routingarea"
)

func d(s string) geom.Decimal { return geom.MustDecimal(s) }

func oidAt(t *testing.T, name, xMin, xMax, width string) *containers.OID {
	t.Helper()
	net := entities.NewNetFromBounds(name, 1, d(width), d("0"), d(xMin), d(xMax))
	oid, err := containers.NewOIDFromNetlist([]*entities.Net{net}, d("0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return oid
}

func TestCapSortWidestFirstThenLeftmost(t *testing.T) {
	a := oidAt(t, "A", "5", "10", "1")
	b := oidAt(t, "B", "0", "10", "3")
	c := oidAt(t, "C", "2", "10", "3")

	sorted := CapSort([]*containers.OID{a, b, c})
	if sorted[0] != b || sorted[1] != c || sorted[2] != a {
		t.Fatalf("expected order [B, C, A], got [%s, %s, %s]", sorted[0].Name, sorted[1].Name, sorted[2].Name)
	}
}

func TestMaxDensityZonesFindsOverlap(t *testing.T) {
	a := oidAt(t, "A", "0", "5", "2")
	b := oidAt(t, "B", "3", "8", "3")
	c := oidAt(t, "C", "10", "12", "1")

	maxDensity, zones := MaxDensityZones([]*containers.OID{a, b, c})
	if !maxDensity.Equal(d("5")) {
		t.Errorf("maxDensity = %s, want 5 (overlap of A and B)", maxDensity)
	}
	if len(zones) != 1 {
		t.Fatalf("expected 1 density zone, got %d: %v", len(zones), zones)
	}
	if !zones[0].Begin.Equal(d("3")) || !zones[0].End.Equal(d("5")) {
		t.Errorf("zone = %v, want [3, 5)", zones[0])
	}
}

func TestIsDesiredNetRejectsSkippingAZone(t *testing.T) {
	oid := oidAt(t, "C", "10", "12", "1")
	zones := []geom.Interval{geom.NewInterval(d("3"), d("5"))}
	if IsDesiredNet(d("0"), zones, oid) {
		t.Error("expected net starting after a skipped zone to be rejected")
	}
	if !IsDesiredNet(d("4"), zones, oid) {
		t.Error("expected net to be accepted once the scan is already inside the zone")
	}
}

func TestLeftEdgePlacesNonOverlappingNetsInOneArea(t *testing.T) {
	ra := routingarea.New(0, d("10"), d("0"))
	a := oidAt(t, "A", "0", "3", "2")
	b := oidAt(t, "B", "4", "7", "2")

	routed, remainingRas, remainingOids := LeftEdge([]*containers.OID{a, b}, []*routingarea.RoutingArea{ra}, false)
	if len(remainingOids) != 0 {
		t.Fatalf("expected both oids placed, got %d remaining", len(remainingOids))
	}
	if len(routed) != 1 {
		t.Fatalf("expected 1 routed area, got %d", len(routed))
	}
	if len(remainingRas) != 0 {
		t.Fatalf("expected no remaining areas, got %d", len(remainingRas))
	}
	if len(ra.Allocations()) != 2 {
		t.Fatalf("expected 2 allocations placed, got %d", len(ra.Allocations()))
	}
}

func TestLeftEdgeReportsUnplaceableWhenAreasExhausted(t *testing.T) {
	ra := routingarea.New(0, d("2"), d("0"))
	a := oidAt(t, "A", "0", "3", "5")

	_, _, remainingOids := LeftEdge([]*containers.OID{a}, []*routingarea.RoutingArea{ra}, false)
	if len(remainingOids) != 1 {
		t.Fatalf("expected the oversized oid to remain unplaced, got %d remaining", len(remainingOids))
	}
}

func TestCapPlacesAllInOneArea(t *testing.T) {
	ra := routingarea.New(0, d("10"), d("0"))
	a := oidAt(t, "A", "0", "3", "2")
	b := oidAt(t, "B", "4", "7", "2")

	_, _, remainingOids := Cap([]*containers.OID{a, b}, []*routingarea.RoutingArea{ra}, false)
	if len(remainingOids) != 0 {
		t.Fatalf("expected both oids placed, got %d remaining", len(remainingOids))
	}
}

func TestCcapPlacesAllInOneArea(t *testing.T) {
	ra := routingarea.New(0, d("10"), d("0"))
	// CCAP ranks areas by each net's pin midline, so these nets carry pins.
	pinned := func(name, xMin, xMax string) *containers.OID {
		pins := []entities.Pin{{X: d(xMin), Y: d("0")}, {X: d(xMax), Y: d("0")}}
		net, err := entities.NewNetFromPins(name, 1, d("2"), d("0"), pins, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		oid, err := containers.NewOIDFromNetlist([]*entities.Net{net}, d("0"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return oid
	}
	a := pinned("A", "0", "3")
	b := pinned("B", "4", "7")

	_, _, remainingOids := Ccap([]*containers.OID{a, b}, []*routingarea.RoutingArea{ra}, false, true)
	if len(remainingOids) != 0 {
		t.Fatalf("expected both oids placed, got %d remaining", len(remainingOids))
	}
}
