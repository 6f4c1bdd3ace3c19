package testutil

import (
	"os"
	"testing"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

// NewNet builds a minimal net for tests that just need something
// Allocatable, named name, spanning [xMin, xMax) on the given layer.
func NewNet(name string, layer int, xMin, xMax string) *entities.Net {
	return entities.NewNetFromBounds(name, layer, geom.MustDecimal("1"), geom.MustDecimal("0"), geom.MustDecimal(xMin), geom.MustDecimal(xMax))
}

// WriteNetlistCSV writes a netlist CSV with the given raw rows (already
// comma-joined lines, no trailing newline needed) to a temp file and
// returns its path.
func WriteNetlistCSV(t *testing.T, rows ...string) string {
	t.Helper()
	return writeTempCSV(t, "netlist_*.csv", rows)
}

// WriteReservedAreasCSV writes a reserved-areas CSV with the given raw rows
// to a temp file and returns its path.
func WriteReservedAreasCSV(t *testing.T, rows ...string) string {
	t.Helper()
	return writeTempCSV(t, "reserved_*.csv", rows)
}

func writeTempCSV(t *testing.T, pattern string, rows []string) string {
	t.Helper()
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("creating temp CSV: %v", err)
	}
	defer f.Close()

	for _, row := range rows {
		if _, err := f.WriteString(row + "\n"); err != nil {
			t.Fatalf("writing temp CSV: %v", err)
		}
	}

	return f.Name()
}

// TempFilePath returns a cross-platform temporary file path with the given
// pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path)

	return path
}

// TempDirPath returns a cross-platform temporary directory path.
func TempDirPath(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
