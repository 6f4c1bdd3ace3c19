package tui

import (
	"testing"

	"github.com/edalab/gcr/output"
)

func TestBuildAreaEntriesOrdersGapsThenColumns(t *testing.T) {
	result := &output.Result{
		Gaps: map[int][]output.AllocationJSON{
			1: {{Name: "B_0", Type: "Net"}},
			0: {{Name: "A_0", Type: "Net"}},
		},
		Subchannels: map[int]map[int][]output.AllocationJSON{
			0: {0: {{Name: "C_0", Type: "Net"}}},
		},
	}

	areas := buildAreaEntries(result)
	if len(areas) != 3 {
		t.Fatalf("expected 3 areas, got %d", len(areas))
	}
	if areas[0].label != "Gap 0" || areas[1].label != "Gap 1" {
		t.Errorf("expected gaps sorted by id, got %q then %q", areas[0].label, areas[1].label)
	}
	if areas[2].label != "Column 0 / Subchannel 0" {
		t.Errorf("expected subchannel area last, got %q", areas[2].label)
	}
}

func TestBuildAreaEntriesHandlesEmptyResult(t *testing.T) {
	areas := buildAreaEntries(&output.Result{})
	if len(areas) != 0 {
		t.Errorf("expected no areas for an empty result, got %d", len(areas))
	}
}
