package netio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edalab/gcr/config"
	"github.com/edalab/gcr/geom"
)

func d(s string) geom.Decimal { return geom.MustDecimal(s) }

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func testProblemSettings(t *testing.T) *config.ProblemSettings {
	t.Helper()
	dir := t.TempDir()
	yamlPath := writeCSV(t, dir, "ps.yaml", `
num_gaps: 1
num_subchannels: 1
gap_y_interval: "5"
y_bottom_blockage: "0"
avoid_points:
  "1":
    x: "100"
    y: "200"
blockage_x_intervals: []
subchannel_x_intervals: []
gap_width:
  D1: "1"
shield_width:
  D1: "0.3"
subchannel_width:
  D1: "1"
fix_net_group:
  TRUNK:
    space: "2"
`)
	ps, err := config.LoadProblemSettings(yamlPath, "", "ccap", "D1", "", false)
	if err != nil {
		t.Fatalf("LoadProblemSettings failed: %v", err)
	}
	return ps
}

func TestReadNetlistGroupsAndParsesPins(t *testing.T) {
	ps := testProblemSettings(t)
	dir := t.TempDir()
	csvContent := "A_0x,D1,1,0.5,,pinA,0,0,pinA2,5,0\nA_0y,D1,1,0.5,,pinB,10,0,pinB2,15,0\n"
	path := writeCSV(t, dir, "netlist.csv", csvContent)

	grouped, err := ReadNetlist(path, ps)
	if err != nil {
		t.Fatalf("ReadNetlist failed: %v", err)
	}

	nets, ok := grouped.Get("A_0")
	if !ok {
		t.Fatalf("expected group %q, got keys %v", "A_0", grouped.Keys())
	}
	if len(nets) != 2 {
		t.Fatalf("expected 2 nets in group, got %d", len(nets))
	}
	if !nets[0].XMin.Equal(d("0")) || !nets[0].XMax.Equal(d("5")) {
		t.Errorf("nets[0] x-bounds = [%s, %s], want [0, 5]", nets[0].XMin, nets[0].XMax)
	}
}

func TestReadNetlistPullsAvoidPoint(t *testing.T) {
	ps := testProblemSettings(t)
	dir := t.TempDir()
	csvContent := "B_1,D1,1,0.5,,pinA,0,0\n"
	path := writeCSV(t, dir, "netlist.csv", csvContent)

	grouped, err := ReadNetlist(path, ps)
	if err != nil {
		t.Fatalf("ReadNetlist failed: %v", err)
	}
	nets, _ := grouped.Get("B_1")
	if len(nets) != 1 {
		t.Fatalf("expected 1 net, got %d", len(nets))
	}
	pins := nets[0].Pins()
	if len(pins) != 2 {
		t.Fatalf("expected 2 pins (1 explicit + 1 avoid point), got %d", len(pins))
	}
	if !pins[1].X.Equal(d("100")) || !pins[1].Y.Equal(d("200")) {
		t.Errorf("avoid point pin = %v, want (100, 200)", pins[1])
	}
}

func TestReadNetlistAppliesFixNetGroupSpace(t *testing.T) {
	ps := testProblemSettings(t)
	dir := t.TempDir()
	csvContent := "TRUNK<0>,D1,1,0.5,,pinA,0,0,pinA2,5,0\n"
	path := writeCSV(t, dir, "netlist.csv", csvContent)

	grouped, err := ReadNetlist(path, ps)
	if err != nil {
		t.Fatalf("ReadNetlist failed: %v", err)
	}
	nets, ok := grouped.Get("TRUNK")
	if !ok {
		t.Fatalf("expected group TRUNK, got keys %v", grouped.Keys())
	}
	if !nets[0].UpperSpace().Equal(d("2")) {
		t.Errorf("expected fix_net_group override space 2, got %s", nets[0].UpperSpace())
	}
}

func TestReadNetlistRejectsUnknownAvoidPoint(t *testing.T) {
	ps := testProblemSettings(t)
	dir := t.TempDir()
	csvContent := "C_9,D1,1,0.5,,pinA,0,0\n"
	path := writeCSV(t, dir, "netlist.csv", csvContent)

	if _, err := ReadNetlist(path, ps); err == nil {
		t.Fatal("expected an error for an avoid-point reference with no matching entry")
	}
}

func TestReadReservedAreasFiltersByLayer(t *testing.T) {
	dir := t.TempDir()
	csvContent := "D1,0,0,5,5\nD2,10,10,15,15\n"
	path := writeCSV(t, dir, "reserved.csv", csvContent)

	areas, err := ReadReservedAreas(path, "D1")
	if err != nil {
		t.Fatalf("ReadReservedAreas failed: %v", err)
	}
	if len(areas) != 1 {
		t.Fatalf("expected 1 area for layer D1, got %d", len(areas))
	}
	if !areas[0].XInterval.Begin.Equal(d("0")) || !areas[0].XInterval.End.Equal(d("5")) {
		t.Errorf("unexpected x-interval: %v", areas[0].XInterval)
	}
}
