package containers

import (
	"testing"

	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
)

func dd(s string) geom.Decimal { return geom.MustDecimal(s) }

func netAt(name string, xMin, xMax string, shieldType string) *entities.Net {
	return entities.NewNetFromBounds(name, 1, dd("0.1"), dd("0.2"), dd(xMin), dd(xMax))
}

func TestNewShieldedNetListEmpty(t *testing.T) {
	s, err := NewShieldedNetList(nil, geom.NewInterval(dd("0"), dd("10")), dd("0.3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty list, got %d entries", s.Len())
	}
}

func TestNewShieldedNetListRejectsMixedShieldTypes(t *testing.T) {
	n1 := netAt("A_0", "0", "10", "")
	n1.ShieldReq = entities.NewShieldType("S1")
	n2 := netAt("A_1", "0", "10", "")
	n2.ShieldReq = entities.NewShieldType("S2")
	_, err := NewShieldedNetList([]*entities.Net{n1, n2}, geom.NewInterval(dd("0"), dd("10")), dd("0.3"))
	if err == nil {
		t.Fatal("expected error for mixed shield types")
	}
}

func TestNewShieldedNetListNoShieldPassesThrough(t *testing.T) {
	n1 := netAt("A_0", "0", "10", "")
	n2 := netAt("A_1", "0", "10", "")
	s, err := NewShieldedNetList([]*entities.Net{n1, n2}, geom.NewInterval(dd("0"), dd("10")), dd("0.3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries (no shields inserted), got %d", s.Len())
	}
}

func TestNewShieldedNetListPerNetShield(t *testing.T) {
	n1 := netAt("A_0", "0", "10", "")
	n1.ShieldReq = entities.NewShieldType("S")
	n2 := netAt("A_1", "0", "8", "")
	n2.ShieldReq = entities.NewShieldType("S")

	s, err := NewShieldedNetList([]*entities.Net{n1, n2}, geom.NewInterval(dd("0"), dd("10")), dd("0.3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// shield, net, shield, net, shield
	if s.Len() != 5 {
		t.Fatalf("expected 5 entries, got %d", s.Len())
	}
	if _, ok := s.At(0).(*entities.Shield); !ok {
		t.Errorf("expected first entry to be a shield, got %T", s.At(0))
	}
	if _, ok := s.At(1).(*entities.Net); !ok {
		t.Errorf("expected second entry to be a net, got %T", s.At(1))
	}
	if _, ok := s.At(4).(*entities.Shield); !ok {
		t.Errorf("expected last entry to be a shield, got %T", s.At(4))
	}
}

func TestNewShieldedNetListGroupShieldWrapsOnce(t *testing.T) {
	n1 := netAt("A_0", "0", "10", "")
	n1.ShieldReq = entities.NewShieldType("G")
	n2 := netAt("A_1", "0", "8", "")
	n2.ShieldReq = entities.NewShieldType("G")

	s, err := NewShieldedNetList([]*entities.Net{n1, n2}, geom.NewInterval(dd("0"), dd("10")), dd("0.3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("expected bottom-shield + 2 nets + top-shield = 4, got %d", s.Len())
	}
	if !s.IsGroupNet() {
		t.Error("expected IsGroupNet() to be true")
	}
	bottom, ok := s.At(0).(*entities.Shield)
	if !ok {
		t.Fatalf("expected first entry to be a shield, got %T", s.At(0))
	}
	if !bottom.XInterval().Equal(geom.NewInterval(dd("0"), dd("10"))) {
		t.Errorf("expected wrap-shield x-interval to equal the group interval, got %v", bottom.XInterval())
	}
}

func TestNewShieldedNetListSingleNetPerNetShieldEdgeCase(t *testing.T) {
	n1 := netAt("A_0", "0", "10", "")
	n1.ShieldReq = entities.NewShieldType("S")

	s, err := NewShieldedNetList([]*entities.Net{n1}, geom.NewInterval(dd("0"), dd("10")), dd("0.3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected shield, net, shield for a single per-net-shield net, got %d entries", s.Len())
	}
}
