package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/route"
	"github.com/edalab/gcr/routingarea"
)

func d(s string) geom.Decimal { return geom.MustDecimal(s) }

func net(name, xMin, xMax string) *entities.Net {
	return entities.NewNetFromBounds(name, 1, d("1"), d("0"), d(xMin), d(xMax))
}

func TestBuildResultGapsAndSubchannels(t *testing.T) {
	gap := routingarea.New(0, d("10"), d("0"))
	if _, err := gap.Allocate(net("A_0", "0", "5"), nil); err != nil {
		t.Fatalf("allocating into gap: %v", err)
	}

	sc := routingarea.New(0, d("5"), d("100"))
	if _, err := sc.Allocate(net("B_0", "0", "3"), nil); err != nil {
		t.Fatalf("allocating into subchannel: %v", err)
	}
	subchannelsByColumn := map[int][]*routingarea.RoutingArea{0: {sc}}

	summary := route.Summarize([]*routingarea.RoutingArea{gap, sc})

	result, err := BuildResult([]*routingarea.RoutingArea{gap}, subchannelsByColumn, summary)
	if err != nil {
		t.Fatalf("BuildResult failed: %v", err)
	}

	gapAllocs, ok := result.Gaps[0]
	if !ok || len(gapAllocs) != 1 {
		t.Fatalf("expected 1 allocation in gap 0, got %v", result.Gaps)
	}
	if gapAllocs[0].Name != "A_0" || gapAllocs[0].Type != "Net" {
		t.Errorf("gap allocation = %+v, want name A_0 type Net", gapAllocs[0])
	}
	if gapAllocs[0].XInterval.Min != "0" || gapAllocs[0].XInterval.Max != "5" {
		t.Errorf("gap allocation x-interval = %+v, want [0,5]", gapAllocs[0].XInterval)
	}

	colResult, ok := result.Subchannels[0]
	if !ok {
		t.Fatalf("expected subchannel column 0, got %v", result.Subchannels)
	}
	scAllocs, ok := colResult[0]
	if !ok || len(scAllocs) != 1 {
		t.Fatalf("expected 1 allocation in subchannel 0, got %v", colResult)
	}
	if scAllocs[0].Name != "B_0" {
		t.Errorf("subchannel allocation name = %q, want B_0", scAllocs[0].Name)
	}

	if result.Summary.RoutingAreasUsed != 2 {
		t.Errorf("Summary.RoutingAreasUsed = %d, want 2", result.Summary.RoutingAreasUsed)
	}
}

func TestBuildResultRejectsEmptyInput(t *testing.T) {
	if _, err := BuildResult(nil, nil, route.Summary{}); err == nil {
		t.Fatal("expected an error when neither gaps nor subchannels are supplied")
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	gap := routingarea.New(0, d("10"), d("0"))
	if _, err := gap.Allocate(net("A_0", "0", "5"), nil); err != nil {
		t.Fatalf("allocating into gap: %v", err)
	}
	summary := route.Summarize([]*routingarea.RoutingArea{gap})

	result, err := BuildResult([]*routingarea.RoutingArea{gap}, nil, summary)
	if err != nil {
		t.Fatalf("BuildResult failed: %v", err)
	}

	dir := t.TempDir()
	if err := Serialize(result, dir, "result.json"); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	path := filepath.Join(dir, "result.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}

	restored, err := Deserialize(path)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}

	gapAllocs, ok := restored.Gaps[0]
	if !ok || len(gapAllocs) != 1 {
		t.Fatalf("round-tripped result missing gap 0 allocation: %v", restored.Gaps)
	}
	if gapAllocs[0].Name != "A_0" {
		t.Errorf("round-tripped allocation name = %q, want A_0", gapAllocs[0].Name)
	}
	if restored.Summary.RoutingAreasUsed != result.Summary.RoutingAreasUsed {
		t.Errorf("round-tripped RoutingAreasUsed = %d, want %d", restored.Summary.RoutingAreasUsed, result.Summary.RoutingAreasUsed)
	}
}

func TestSerializeCreatesSaveDir(t *testing.T) {
	gap := routingarea.New(0, d("10"), d("0"))
	if _, err := gap.Allocate(net("A_0", "0", "5"), nil); err != nil {
		t.Fatalf("allocating into gap: %v", err)
	}
	summary := route.Summarize([]*routingarea.RoutingArea{gap})
	result, err := BuildResult([]*routingarea.RoutingArea{gap}, nil, summary)
	if err != nil {
		t.Fatalf("BuildResult failed: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "nested", "output")
	if err := Serialize(result, dir, "result.json"); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "result.json")); err != nil {
		t.Fatalf("expected Serialize to create the save dir: %v", err)
	}
}
