package cli

import (
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/edalab/gcr/config"
	"github.com/edalab/gcr/netio"
	"github.com/edalab/gcr/output"
	"github.com/edalab/gcr/route"
	"github.com/edalab/gcr/routingarea"
	"github.com/edalab/gcr/runlog"
	"github.com/edalab/gcr/tui"
)

// runRoute is the CLI's sole action: load inputs, run the two-step routing
// pipeline, write the JSON result and utilization heatmap, and optionally
// hand the finished layout to the interactive viewer.
func runRoute(c *cli.Context) error {
	profile, err := resolveProfile(c)
	if err != nil {
		return err
	}

	logger := runlog.New()
	stage := logger.Stage("load_inputs")
	stage.WithFields(map[string]interface{}{
		"netlist":          profile.Netlist,
		"problem_settings": profile.ProblemSettings,
		"layer":            profile.Layer,
		"algorithm":        profile.Algorithm,
	}).Info("loading run inputs")

	ps, err := config.LoadProblemSettings(profile.ProblemSettings, profile.ReservedAreas, profile.Algorithm, profile.Layer, profile.SaveDir, profile.Gco)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}

	netGroupDict, err := netio.ReadNetlist(profile.Netlist, ps)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	netGroupDict, err = netio.FilterIncompatibleNetGroups(netGroupDict, ps, logger)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	logger.Counts("load_inputs", netGroupDict.Len()).Info("read net groups")

	subchannelsByColumn, err := route.BuildSubchannels(ps)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	gaps := ps.GenerateGaps()

	algorithm := route.Algorithm(profile.Algorithm)
	logger.Stage("route").Info("running two-step routing")
	subchannelsByColumn, usedGaps, err := route.TwoStepRouting(
		netGroupDict,
		ps.BlockageXIntervals,
		ps.SubchannelWidth(),
		ps.ShieldWidth(),
		subchannelsByColumn,
		gaps,
		algorithm,
		ps.UseGco,
	)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}

	allRoutingAreas := append([]*routingarea.RoutingArea{}, usedGaps...)
	for _, subchannels := range subchannelsByColumn {
		allRoutingAreas = append(allRoutingAreas, subchannels...)
	}
	summary := route.Summarize(allRoutingAreas)
	logger.Counts("route", summary.RoutingAreasUsed).WithField(
		"total_vertical_wirelength", summary.TotalVerticalWirelength.String(),
	).Info("routing finished")

	result, err := output.BuildResult(usedGaps, subchannelsByColumn, summary)
	if err != nil {
		return fmt.Errorf("cli: %w", err)
	}

	if err := output.Serialize(result, ps.SaveDir, "routing_result.json"); err != nil {
		return fmt.Errorf("cli: %w", err)
	}
	logger.Stage("write_output").WithField("save_dir", ps.SaveDir).Info("wrote routing result")

	if c.Bool(plotFlag.Name) {
		if len(usedGaps) > 0 {
			path := filepath.Join(ps.SaveDir, "gaps_utilization.html")
			if err := output.PlotUtilization(usedGaps, "Gap Utilization", path); err != nil {
				return fmt.Errorf("cli: %w", err)
			}
		}
		for col, subchannels := range subchannelsByColumn {
			path := filepath.Join(ps.SaveDir, fmt.Sprintf("subchannel_column_%d_utilization.html", col))
			if err := output.PlotUtilization(subchannels, fmt.Sprintf("Subchannel Column %d Utilization", col), path); err != nil {
				return fmt.Errorf("cli: %w", err)
			}
		}
	}

	if c.Bool(tuiFlag.Name) {
		app := tui.NewApp(result)
		return app.Run()
	}

	return nil
}
