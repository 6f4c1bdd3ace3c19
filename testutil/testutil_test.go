package testutil

import (
	"os"
	"testing"
)

func TestNewNetBuildsBoundedNet(t *testing.T) {
	n := NewNet("A_0", 1, "0", "5")
	if n.Name != "A_0" {
		t.Errorf("Name = %q, want A_0", n.Name)
	}
}

func TestWriteNetlistCSVWritesRows(t *testing.T) {
	path := WriteNetlistCSV(t, "A_0,D1,1,0.5,,pinA,0,0,pinA2,5,0")
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written netlist: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty netlist file")
	}
}

func TestWriteReservedAreasCSVWritesRows(t *testing.T) {
	path := WriteReservedAreasCSV(t, "D1,0,0,5,5")
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written reserved areas: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty reserved areas file")
	}
}

func TestTempFilePathDoesNotCreateFile(t *testing.T) {
	path := TempFilePath(t, "gcr_test_*.tmp")
	if _, err := os.Stat(path); err == nil {
		t.Error("expected TempFilePath to not create the file")
	}
}
