// Package netio reads the external, CSV-formatted inputs a run consumes:
// the netlist and the reserved-area list. Parsing lives at the boundary
// between untrusted text and the exact-decimal geometric kernel, so every
// malformed row surfaces as an error instead of a panic.
package netio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/edalab/gcr/config"
	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

var (
	avoidBlockPattern = regexp.MustCompile(`_(\d+)$`)
	groupNoPattern    = regexp.MustCompile(`<(\d+)>`)
	layerDigitPattern = regexp.MustCompile(`(\d+)`)
)

// layerFromString extracts the numeric layer identifier from a name like
// "D1"/"D2", matching the CSV's plain-string layer column against
// entities.Net's integer Layer field.
func layerFromString(s string) (int, error) {
	m := layerDigitPattern.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("netio: layer %q has no numeric component", s)
	}
	var layer int
	if _, err := fmt.Sscanf(m, "%d", &layer); err != nil {
		return 0, fmt.Errorf("netio: invalid layer %q: %w", s, err)
	}
	return layer, nil
}

// ReadNetlist reads a netlist CSV, grouping the resulting nets by
// Net.GroupName() in first-seen order, and applies any per-group parameter
// override from the problem settings' fix_net_group table.
//
// Each row is: name, layer, width, space, shield_type, then pin triples
// (name, x, y) repeating to the end of the row. A net name ending in
// "_<digits>" pulls in an extra avoid-routing pin from the problem
// settings' avoid_points table, keyed by those digits; a name containing
// "<digits>" marks the net as a member of a bundle group.
func ReadNetlist(path string, ps *config.ProblemSettings) (*containers.OrderedMap[string, []*entities.Net], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netio: opening netlist %q: %w", path, err)
	}
	defer f.Close()

	grouped := containers.NewOrderedMap[string, []*entities.Net]()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rowNum := 0
	for {
		rowNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("netio: netlist %q row %d: %w", path, rowNum, err)
		}

		net, err := parseNetlistRow(row, ps)
		if err != nil {
			return nil, fmt.Errorf("netio: netlist %q row %d: %w", path, rowNum, err)
		}

		groupName := net.GroupName()
		existing, _ := grouped.Get(groupName)
		grouped.Set(groupName, append(existing, net))
	}

	return applyFixNetGroup(grouped, ps)
}

func parseNetlistRow(row []string, ps *config.ProblemSettings) (*entities.Net, error) {
	if len(row) < 5 {
		return nil, fmt.Errorf("expected at least 5 columns, got %d", len(row))
	}

	name := row[0]
	layer, err := layerFromString(row[1])
	if err != nil {
		return nil, err
	}
	width, err := geom.ParseDecimal(row[2])
	if err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	space, err := geom.ParseDecimal(row[3])
	if err != nil {
		return nil, fmt.Errorf("space: %w", err)
	}
	shieldType := row[4]

	var groupNo string
	if m := groupNoPattern.FindStringSubmatch(name); m != nil {
		groupNo = m[1]
	}

	pinFields := row[5:]
	var pins []entities.Pin
	for i := 0; i+3 <= len(pinFields); i += 3 {
		xStr := pinFields[i+1]
		if xStr == "" {
			continue
		}
		yStr := pinFields[i+2]
		x, err := geom.ParseDecimal(xStr)
		if err != nil {
			return nil, fmt.Errorf("pin x: %w", err)
		}
		y, err := geom.ParseDecimal(yStr)
		if err != nil {
			return nil, fmt.Errorf("pin y: %w", err)
		}
		pins = append(pins, entities.Pin{X: x, Y: y})
	}

	if m := avoidBlockPattern.FindStringSubmatch(name); m != nil {
		addPin, ok := ps.AvoidPoints[m[1]]
		if !ok {
			return nil, fmt.Errorf("net %q references unknown avoid point %q", name, m[1])
		}
		pins = append(pins, addPin)
	}

	return entities.NewNetFromPins(name, layer, width, space, pins, shieldType, groupNo)
}

// applyFixNetGroup overrides a net group's spacing from the problem
// settings' fix_net_group table, mirroring
// original_source/gcr/utils.py:fix_net_parameters — the only property it
// ever overrides is spacing.
func applyFixNetGroup(grouped *containers.OrderedMap[string, []*entities.Net], ps *config.ProblemSettings) (*containers.OrderedMap[string, []*entities.Net], error) {
	out := containers.NewOrderedMap[string, []*entities.Net]()

	for _, groupName := range grouped.Keys() {
		nets, _ := grouped.Get(groupName)
		override, ok := ps.FixNetGroupDict[groupName]
		if !ok {
			out.Set(groupName, nets)
			continue
		}
		spaceStr, ok := override["space"]
		if !ok {
			out.Set(groupName, nets)
			continue
		}
		space, err := geom.ParseDecimal(spaceStr)
		if err != nil {
			return nil, fmt.Errorf("netio: fix_net_group[%q].space: %w", groupName, err)
		}

		fixed := make([]*entities.Net, len(nets))
		for i, n := range nets {
			fn, err := entities.NewNetFromPins(n.Name, n.Layer, n.Width(), space, n.Pins(), n.ShieldReq.String(), n.GroupNo)
			if err != nil {
				return nil, fmt.Errorf("netio: fix_net_group[%q]: %w", groupName, err)
			}
			fixed[i] = fn
		}
		out.Set(groupName, fixed)
	}

	return out, nil
}

// ReservedArea is a rectangular keep-out read straight from the
// reserved-areas CSV, kept distinct from entities.Blockage: it carries no
// spacing/allocation semantics of its own until a caller intersects it
// against a specific routing area's x/y extent and converts the result
// into a Blockage.
type ReservedArea struct {
	XInterval geom.Interval
	YInterval geom.Interval
}

// ReadReservedAreas reads a reserved-areas CSV, keeping only rows whose
// layer column matches targetLayer. Each row is: layer, x_min, y_min,
// x_max, y_max.
func ReadReservedAreas(path, targetLayer string) ([]ReservedArea, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netio: opening reserved areas %q: %w", path, err)
	}
	defer f.Close()

	var areas []ReservedArea
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rowNum := 0
	for {
		rowNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("netio: reserved areas %q row %d: %w", path, rowNum, err)
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("netio: reserved areas %q row %d: expected 5 columns, got %d", path, rowNum, len(row))
		}
		if row[0] != targetLayer {
			continue
		}

		xMin, err := geom.ParseDecimal(row[1])
		if err != nil {
			return nil, fmt.Errorf("netio: reserved areas %q row %d: x_min: %w", path, rowNum, err)
		}
		yMin, err := geom.ParseDecimal(row[2])
		if err != nil {
			return nil, fmt.Errorf("netio: reserved areas %q row %d: y_min: %w", path, rowNum, err)
		}
		xMax, err := geom.ParseDecimal(row[3])
		if err != nil {
			return nil, fmt.Errorf("netio: reserved areas %q row %d: x_max: %w", path, rowNum, err)
		}
		yMax, err := geom.ParseDecimal(row[4])
		if err != nil {
			return nil, fmt.Errorf("netio: reserved areas %q row %d: y_max: %w", path, rowNum, err)
		}

		areas = append(areas, ReservedArea{
			XInterval: geom.NewInterval(xMin, xMax),
			YInterval: geom.NewInterval(yMin, yMax),
		})
	}

	return areas, nil
}
