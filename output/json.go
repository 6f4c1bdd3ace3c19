// Package output serializes a finished routing pass to disk: the gap and
// subchannel allocations as JSON, and a utilization heatmap for visual
// inspection. The JSON shape is grounded on the original router's
// RoutingResultSerializer/RoutingResultDeserializer.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/route"
	"github.com/edalab/gcr/routingarea"
)

// AllocationJSON is one placed net/shield/blockage, serialized with every
// decimal coordinate as a string so no precision is lost going through
// JSON's float-based number type.
type AllocationJSON struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	XInterval IntervalJSON `json:"x_interval"`
	YInterval IntervalJSON `json:"y_interval"`
}

// IntervalJSON mirrors the original's {"min": ..., "max": ...} interval shape.
type IntervalJSON struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// SummaryJSON reports the routing-area count and total vertical wirelength
// alongside the allocation data, so a single output file is self-describing.
type SummaryJSON struct {
	RoutingAreasUsed        int    `json:"routing_areas_used"`
	TotalVerticalWirelength string `json:"total_vertical_wirelength"`
}

// Result is the full on-disk shape: gap allocations keyed by gap ID,
// subchannel allocations keyed by column then subchannel ID, and a summary.
type Result struct {
	Gaps        map[int][]AllocationJSON          `json:"gaps,omitempty"`
	Subchannels map[int]map[int][]AllocationJSON  `json:"subchannel,omitempty"`
	Summary     SummaryJSON                        `json:"summary"`
}

func convertAllocation(a entities.Allocation) (AllocationJSON, error) {
	name, err := a.Name()
	if err != nil {
		return AllocationJSON{}, err
	}
	xiv := a.XInterval()
	yiv := a.YInterval()
	return AllocationJSON{
		Name: name,
		Type: a.Type(),
		XInterval: IntervalJSON{
			Min: xiv.Begin.String(),
			Max: xiv.End.String(),
		},
		YInterval: IntervalJSON{
			Min: yiv.Begin.String(),
			Max: yiv.End.String(),
		},
	}, nil
}

func convertArea(ra *routingarea.RoutingArea) ([]AllocationJSON, error) {
	allocs := ra.Allocations()
	out := make([]AllocationJSON, len(allocs))
	for i, a := range allocs {
		aj, err := convertAllocation(a)
		if err != nil {
			return nil, fmt.Errorf("output: routing area %d: %w", ra.ID, err)
		}
		out[i] = aj
	}
	return out, nil
}

// BuildResult assembles a Result from a routed layout. gaps or
// subchannelsByColumn may be nil when a run only exercises one of the two
// routing modes, but at least one of them must be non-empty.
func BuildResult(gaps []*routingarea.RoutingArea, subchannelsByColumn map[int][]*routingarea.RoutingArea, summary route.Summary) (*Result, error) {
	if len(gaps) == 0 && len(subchannelsByColumn) == 0 {
		return nil, fmt.Errorf("output: BuildResult: neither gaps nor subchannels were supplied")
	}

	result := &Result{
		Summary: SummaryJSON{
			RoutingAreasUsed:        summary.RoutingAreasUsed,
			TotalVerticalWirelength: summary.TotalVerticalWirelength.String(),
		},
	}

	if len(gaps) > 0 {
		result.Gaps = make(map[int][]AllocationJSON, len(gaps))
		for _, ra := range gaps {
			allocs, err := convertArea(ra)
			if err != nil {
				return nil, err
			}
			result.Gaps[ra.ID] = allocs
		}
	}

	if len(subchannelsByColumn) > 0 {
		result.Subchannels = make(map[int]map[int][]AllocationJSON, len(subchannelsByColumn))
		for col, subchannels := range subchannelsByColumn {
			byID := make(map[int][]AllocationJSON, len(subchannels))
			for _, ra := range subchannels {
				allocs, err := convertArea(ra)
				if err != nil {
					return nil, err
				}
				byID[ra.ID] = allocs
			}
			result.Subchannels[col] = byID
		}
	}

	return result, nil
}

// Serialize writes result as indented JSON under saveDir/fname, creating
// saveDir if it does not yet exist, mirroring save_json.
func Serialize(result *Result, saveDir, fname string) error {
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return fmt.Errorf("output: creating save dir %q: %w", saveDir, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("output: marshaling result: %w", err)
	}

	path := filepath.Join(saveDir, fname)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("output: writing %q: %w", path, err)
	}
	return nil
}

// Deserialize reads a result file previously written by Serialize, for
// tests and tooling that need to inspect a prior run's output.
func Deserialize(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("output: reading %q: %w", path, err)
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("output: parsing %q: %w", path, err)
	}
	return &result, nil
}
