package entities

import (
	"fmt"
	"strings"

	"github.com/edalab/gcr/geom"
)

// Net is a wire to be routed, located either by explicit x-bounds or
// derived from its pin list.
type Net struct {
	Name      string
	Layer     int
	width     geom.Decimal
	space     geom.Decimal
	XMin      geom.Decimal
	XMax      geom.Decimal
	pins      []Pin
	ShieldReq ShieldType
	GroupNo   string
}

// NewNetFromBounds builds a Net with an explicit x-interval and no pins.
func NewNetFromBounds(name string, layer int, width, space, xMin, xMax geom.Decimal) *Net {
	return &Net{Name: name, Layer: layer, width: width, space: space, XMin: xMin, XMax: xMax}
}

// NewNetFromPins builds a Net whose x-interval is derived from pins: the
// min/max pin x-coordinates, widened by TrunkEpsilon when they coincide so
// the resulting interval is never degenerate.
func NewNetFromPins(name string, layer int, width, space geom.Decimal, pins []Pin, shieldType string, groupNo string) (*Net, error) {
	if len(pins) == 0 {
		return nil, fmt.Errorf("entities: NewNetFromPins: net %q has no pins", name)
	}
	xMin, xMax := pins[0].X, pins[0].X
	for _, p := range pins[1:] {
		xMin = geom.Min(xMin, p.X)
		xMax = geom.Max(xMax, p.X)
	}
	if xMin.Equal(xMax) {
		xMax = xMax.Add(geom.TrunkEpsilon)
	}
	return &Net{
		Name:      name,
		Layer:     layer,
		width:     width,
		space:     space,
		XMin:      xMin,
		XMax:      xMax,
		pins:      pins,
		ShieldReq: NewShieldType(shieldType),
		GroupNo:   groupNo,
	}, nil
}

func (n *Net) XInterval() geom.Interval {
	return geom.NewInterval(n.XMin, n.XMax)
}

func (n *Net) Width() geom.Decimal {
	return n.width
}

func (n *Net) UpperSpace() geom.Decimal {
	return n.space
}

func (n *Net) LowerSpace() geom.Decimal {
	return n.space
}

func (n *Net) Pins() []Pin {
	return n.pins
}

func (n *Net) YMidUpper() geom.Decimal { return YMidUpper(n.pins) }
func (n *Net) YMidLower() geom.Decimal { return YMidLower(n.pins) }
func (n *Net) YMid() geom.Decimal      { return YMid(n.pins) }

func (n *Net) VerticalWirelength(y *geom.Decimal) geom.Decimal {
	return VerticalWirelength(n.pins, y)
}

// GroupName derives the net-group key from the net name. It reproduces the
// original's exact (and exactly as buggy) truncation: the first run of
// digits after the first underscore is truncated to one character, since
// the original slices `name[:i+2]` where i is the underscore's index
// ("NOTE: 0~3 までしかないから+2でOK" — valid only while group numbers stay
// single digit). Kept unchanged for output-compatibility; see DESIGN.md.
func (n *Net) GroupName() string {
	name := n.Name
	if i := strings.Index(name, "_"); i >= 0 {
		end := i + 2
		if end > len(name) {
			end = len(name)
		}
		return name[:end]
	}
	if i := strings.Index(name, "<"); i >= 0 {
		return name[:i]
	}
	return name
}

// RequireShield reports whether this net needs a shield placed beside it.
func (n *Net) RequireShield() bool {
	return !n.ShieldReq.IsNone()
}

func (n *Net) String() string {
	return fmt.Sprintf("%s: [%s, %s]", n.Name, n.XMin, n.XMax)
}
