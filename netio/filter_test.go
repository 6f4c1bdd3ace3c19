package netio

import (
	"testing"

	"github.com/edalab/gcr/config"
	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
)

func psWithTargetLayer(t *testing.T, layer string) *config.ProblemSettings {
	t.Helper()
	ps := testProblemSettings(t)
	ps.TargetLayer = layer
	return ps
}

func TestFilterIncompatibleNetGroupsDropsOffTargetLayer(t *testing.T) {
	ps := psWithTargetLayer(t, "D2")
	grouped := containers.NewOrderedMap[string, []*entities.Net]()
	grouped.Set("g1", []*entities.Net{entities.NewNetFromBounds("g1", 1, d("0.1"), d("0.1"), d("0"), d("1"))})

	out, err := FilterIncompatibleNetGroups(grouped, ps, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected off-target-layer group to be dropped, got %d groups", out.Len())
	}
}

func TestFilterIncompatibleNetGroupsDropsMixedLayer(t *testing.T) {
	ps := psWithTargetLayer(t, "D1")
	grouped := containers.NewOrderedMap[string, []*entities.Net]()
	grouped.Set("g1", []*entities.Net{
		entities.NewNetFromBounds("g1", 1, d("0.1"), d("0.1"), d("0"), d("1")),
		entities.NewNetFromBounds("g1", 2, d("0.1"), d("0.1"), d("0"), d("1")),
	})

	out, err := FilterIncompatibleNetGroups(grouped, ps, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected mixed-layer group to be dropped, got %d groups", out.Len())
	}
}

func TestFilterIncompatibleNetGroupsKeepsCleanGroup(t *testing.T) {
	ps := psWithTargetLayer(t, "D1")
	grouped := containers.NewOrderedMap[string, []*entities.Net]()
	grouped.Set("g1", []*entities.Net{
		entities.NewNetFromBounds("g1", 1, d("0.1"), d("0.1"), d("0"), d("1")),
		entities.NewNetFromBounds("g1", 1, d("0.1"), d("0.1"), d("0"), d("1")),
	})

	out, err := FilterIncompatibleNetGroups(grouped, ps, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("expected clean group to survive, got %d groups", out.Len())
	}
	if _, ok := out.Get("g1"); !ok {
		t.Fatalf("expected group g1 to survive")
	}
}

func TestFilterIncompatibleNetGroupsPassesThroughUntouchedGroups(t *testing.T) {
	ps := psWithTargetLayer(t, "D1")
	grouped := containers.NewOrderedMap[string, []*entities.Net]()
	grouped.Set("on-target", []*entities.Net{
		entities.NewNetFromBounds("on-target", 1, d("0.1"), d("0.1"), d("0"), d("1")),
	})
	grouped.Set("off-target", []*entities.Net{
		entities.NewNetFromBounds("off-target", 2, d("0.1"), d("0.1"), d("0"), d("1")),
	})

	out, err := FilterIncompatibleNetGroups(grouped, ps, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("expected exactly one surviving group, got %d", out.Len())
	}
	if _, ok := out.Get("on-target"); !ok {
		t.Fatalf("expected on-target group to survive")
	}
	if _, ok := out.Get("off-target"); ok {
		t.Fatalf("expected off-target group to be dropped")
	}
}
