package entities

import (
	"fmt"

	"github.com/edalab/gcr/geom"
)

// Allocation records where some Allocatable ended up: the underlying data
// plus the y-offset a RoutingArea chose for it.
type Allocation struct {
	Data   Allocatable
	Offset geom.Decimal
}

// NewAllocation wraps data at offset.
func NewAllocation(data Allocatable, offset geom.Decimal) Allocation {
	return Allocation{Data: data, Offset: offset}
}

func (a Allocation) XInterval() geom.Interval {
	return a.Data.XInterval()
}

func (a Allocation) Width() geom.Decimal {
	return a.Data.Width()
}

func (a Allocation) UpperSpace() geom.Decimal {
	return a.Data.UpperSpace()
}

func (a Allocation) LowerSpace() geom.Decimal {
	return a.Data.LowerSpace()
}

// Type names the concrete kind of the wrapped Allocatable, mirroring the
// original's `self.data.__class__.__name__`.
func (a Allocation) Type() string {
	switch a.Data.(type) {
	case *Net:
		return "Net"
	case *Shield:
		return "Shield"
	case *Blockage:
		return "Blockage"
	default:
		return fmt.Sprintf("%T", a.Data)
	}
}

// Name returns the wrapped placeable's display name: a net or shield's own
// name, or the literal "Blockage" for blockages.
func (a Allocation) Name() (string, error) {
	switch d := a.Data.(type) {
	case *Net:
		return d.Name, nil
	case *Shield:
		return d.Name, nil
	case *Blockage:
		return "Blockage", nil
	default:
		return "", fmt.Errorf("entities: Allocation.Name: invalid data type %T", a.Data)
	}
}

func (a Allocation) XMin() geom.Decimal {
	return a.XInterval().Begin
}

func (a Allocation) XMax() geom.Decimal {
	return a.XInterval().End
}

func (a Allocation) YMin() geom.Decimal {
	return a.Offset
}

func (a Allocation) YMax() geom.Decimal {
	return a.Offset.Add(a.Data.Width())
}

// YMaxWithSpace is YMax plus the upper spacing this allocation reserves.
func (a Allocation) YMaxWithSpace() geom.Decimal {
	return a.Offset.Add(a.Data.Width()).Add(a.Data.UpperSpace())
}

func (a Allocation) YInterval() geom.Interval {
	return geom.NewInterval(a.Offset, a.Offset.Add(a.Width()))
}

func (a Allocation) String() string {
	return fmt.Sprintf("%s: [%s,%s]", a.Type(), a.Offset, a.Offset.Add(a.Width()))
}
