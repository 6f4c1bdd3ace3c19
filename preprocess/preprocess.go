// Package preprocess splits net groups that cannot be routed as a single
// unit into pieces small enough for one routing area, deciding per group
// whether it can route directly (an OID) or needs a multi-area Bundle.
package preprocess

import (
	"fmt"

	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/routeerr"
	"github.com/edalab/gcr/routingarea"
)

// DivideWidth splits width w into as many factor-sized pieces as fit, plus
// one final remainder piece if w is not an exact multiple of factor.
// DivideWidth(8, 3) = [3, 3, 2]; DivideWidth(8, 2) = [2, 2, 2, 2].
func DivideWidth(w, factor geom.Decimal) []geom.Decimal {
	quotient, remainder := w.QuoRem(factor, 0)
	n := int(quotient.IntPart())
	out := make([]geom.Decimal, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, factor)
	}
	if !remainder.IsZero() {
		out = append(out, remainder)
	}
	return out
}

// TrunkDivision splits a single net too wide for routingAreaWidth into
// several narrower child nets sharing the same pins, named "{name}_c{i}".
func TrunkDivision(net *entities.Net, shieldWidth, routingAreaWidth geom.Decimal) ([]*entities.Net, error) {
	allocatableWidthMax := routingAreaWidth.Sub(net.UpperSpace().Add(net.LowerSpace()))
	if !net.ShieldReq.IsNone() {
		two := geom.MustDecimal("2")
		allocatableWidthMax = routingAreaWidth.Sub(
			net.UpperSpace().Mul(two).Add(net.LowerSpace().Mul(two)).Add(shieldWidth.Mul(two)),
		)
	}
	if !allocatableWidthMax.GreaterThan(geom.Zero) {
		return nil, fmt.Errorf("%w: %s: allocatable width max %s <= 0", routeerr.ErrUnsplittableTrunk, net.Name, allocatableWidthMax)
	}

	widths := DivideWidth(net.Width(), allocatableWidthMax)
	out := make([]*entities.Net, len(widths))
	for i, w := range widths {
		child, err := entities.NewNetFromPins(
			fmt.Sprintf("%s_c%d", net.Name, i),
			net.Layer,
			w,
			net.UpperSpace(),
			net.Pins(),
			net.ShieldReq.Name,
			net.GroupNo,
		)
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}

// Grouping splits netlist into the largest runs that still fit one routing
// area, greedily extending a run until adding the next net would overflow,
// then closing the run and starting the next one from the overflowing net.
// A run that overflows with just one net in it is trunk-divided instead.
func Grouping(netlist []*entities.Net, shieldWidth geom.Decimal, ra *routingarea.RoutingArea) ([][]*entities.Net, error) {
	var groups [][]*entities.Net
	var current []*entities.Net

	for _, n := range netlist {
		current = append(current, n)
		oid, err := containers.NewOIDFromNetlist(current, shieldWidth)
		if err != nil {
			return nil, err
		}
		if ra.Allocatable(oid, nil) {
			continue
		}

		if len(current) == 1 {
			divided, err := TrunkDivision(current[0], shieldWidth, ra.Width)
			if err != nil {
				return nil, err
			}
			for _, child := range divided {
				groups = append(groups, []*entities.Net{child})
			}
			current = nil
		} else {
			groups = append(groups, current[:len(current)-1])
			current = current[len(current)-1:]
		}
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, nil
}

// Run splits netGroupDict into net groups that route as a single OID and
// net groups too large for one area, bundled as multi-area Bundles.
func Run(netGroupDict *containers.OrderedMap[string, []*entities.Net], shieldWidth geom.Decimal, ra *routingarea.RoutingArea) ([]*containers.OID, []*containers.Bundle, error) {
	var oids []*containers.OID
	var bundles []*containers.Bundle

	for _, netGroupName := range netGroupDict.Keys() {
		nl, _ := netGroupDict.Get(netGroupName)

		oid, err := containers.NewOIDFromNetlist(nl, shieldWidth)
		if err != nil {
			return nil, nil, err
		}

		if ra.Allocatable(oid, nil) {
			oids = append(oids, oid)
			continue
		}

		var groups [][]*entities.Net
		if len(nl) == 1 {
			divided, err := TrunkDivision(nl[0], shieldWidth, ra.Width)
			if err != nil {
				return nil, nil, err
			}
			groups, err = Grouping(divided, shieldWidth, ra)
			if err != nil {
				return nil, nil, err
			}
		} else {
			groups, err = Grouping(nl, shieldWidth, ra)
			if err != nil {
				return nil, nil, err
			}
		}

		components := make([]*containers.OID, 0, len(groups))
		for _, subNl := range groups {
			o, err := containers.NewOIDFromNetlist(subNl, shieldWidth)
			if err != nil {
				return nil, nil, err
			}
			components = append(components, o)
		}
		bundles = append(bundles, containers.NewBundle(netGroupName, components))
	}
	return oids, bundles, nil
}
