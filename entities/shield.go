package entities

import (
	"errors"
	"fmt"

	"github.com/edalab/gcr/geom"
)

// ErrShieldExtendUnimplemented mirrors the original Python Shield.extend,
// which raises NotImplementedError; nothing in this router calls it.
var ErrShieldExtendUnimplemented = errors.New("entities: Shield.Extend is not implemented")

// Shield is a spacing-providing net placed adjacent to the nets it
// protects. Like Net, its upper and lower space are both the single
// configured space value; unlike Net it carries no pins.
type Shield struct {
	Name       string
	Type       ShieldType
	Layer      int
	XMin, XMax geom.Decimal
	width      geom.Decimal
	space      geom.Decimal
}

// NewShield builds a Shield placeable.
func NewShield(name string, typ ShieldType, layer int, xMin, xMax, width, space geom.Decimal) *Shield {
	return &Shield{Name: name, Type: typ, Layer: layer, XMin: xMin, XMax: xMax, width: width, space: space}
}

func (s *Shield) XInterval() geom.Interval {
	return geom.NewInterval(s.XMin, s.XMax)
}

func (s *Shield) Width() geom.Decimal {
	return s.width
}

func (s *Shield) UpperSpace() geom.Decimal {
	return s.space
}

func (s *Shield) LowerSpace() geom.Decimal {
	return s.space
}

// Extend is kept to document the method the original source left
// unimplemented (`raise NotImplementedError`); no caller in this router
// invokes it.
func (s *Shield) Extend(_ geom.Interval) (*Shield, error) {
	return nil, ErrShieldExtendUnimplemented
}

func (s *Shield) String() string {
	return fmt.Sprintf("Shield: %s(%s)", s.Name, s.Type)
}
