package entities

import (
	"fmt"

	"github.com/edalab/gcr/geom"
)

// Blockage is a reserved rectangular keep-out that has already been placed
// into a routing area before any net or shield; it demands no spacing of
// its own since the obstruction it represents owns its exact footprint.
type Blockage struct {
	XMin, XMax geom.Decimal
	YMin, YMax geom.Decimal
}

// NewBlockage builds a Blockage from its x/y extents.
func NewBlockage(xMin, xMax, yMin, yMax geom.Decimal) *Blockage {
	return &Blockage{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

func (b *Blockage) XInterval() geom.Interval {
	return geom.NewInterval(b.XMin, b.XMax)
}

func (b *Blockage) YInterval() geom.Interval {
	return geom.NewInterval(b.YMin, b.YMax)
}

func (b *Blockage) Width() geom.Decimal {
	return b.YMax.Sub(b.YMin)
}

func (b *Blockage) UpperSpace() geom.Decimal {
	return geom.Zero
}

func (b *Blockage) LowerSpace() geom.Decimal {
	return geom.Zero
}

func (b *Blockage) String() string {
	return fmt.Sprintf("Blockage: Ix[%s, %s] Iy[%s, %s]", b.XMin, b.XMax, b.YMin, b.YMax)
}
