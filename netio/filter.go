package netio

import (
	"fmt"

	"github.com/edalab/gcr/config"
	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/routeerr"
	"github.com/edalab/gcr/runlog"
)

// FilterIncompatibleNetGroups drops net groups this run cannot route,
// mirroring original_source/src/main.py:remove_not_assumed_netlist. It runs
// two passes over grouped, in the original's order:
//
//   - any group whose first net isn't on ps.TargetLayer is dropped
//     silently, matching the original's un-logged first pass;
//   - among the survivors, any group whose members don't all share one
//     layer is dropped and logged, since that disagreement indicates a
//     malformed netlist rather than an off-layer group the run simply
//     doesn't touch.
//
// Both kinds of drop are non-fatal: they only log an error for the
// mixed-layer case so the drop is traceable via
// routeerr.ErrIncompatibleGroup. The one error FilterIncompatibleNetGroups
// returns is for a ps.TargetLayer with no numeric component.
func FilterIncompatibleNetGroups(grouped *containers.OrderedMap[string, []*entities.Net], ps *config.ProblemSettings, logger *runlog.Logger) (*containers.OrderedMap[string, []*entities.Net], error) {
	targetLayer, err := layerFromString(ps.TargetLayer)
	if err != nil {
		return nil, fmt.Errorf("netio: target layer: %w", err)
	}

	onTarget := containers.NewOrderedMap[string, []*entities.Net]()
	for _, groupName := range grouped.Keys() {
		nets, _ := grouped.Get(groupName)
		if len(nets) == 0 || nets[0].Layer != targetLayer {
			continue
		}
		onTarget.Set(groupName, nets)
	}

	out := containers.NewOrderedMap[string, []*entities.Net]()
	for _, groupName := range onTarget.Keys() {
		nets, _ := onTarget.Get(groupName)

		mixed := false
		for _, n := range nets[1:] {
			if n.Layer != nets[0].Layer {
				mixed = true
				break
			}
		}
		if mixed {
			err := fmt.Errorf("%w: group %q", routeerr.ErrIncompatibleGroup, groupName)
			if logger != nil {
				logger.NetGroup("load_inputs", groupName).WithError(err).
					Warn("dropping net group due to not-compatible design rules")
			}
			continue
		}
		out.Set(groupName, nets)
	}

	return out, nil
}
