// Package cli wires the router's command-line surface: flag parsing and
// defaults (optionally seeded from a TOML run profile), and dispatch into
// the routing pipeline in api.go.
package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/edalab/gcr/config"
	"github.com/edalab/gcr/version"
)

var (
	profileFlag = &cli.StringFlag{
		Name:  "profile",
		Usage: "path to a TOML run profile supplying default flag values",
	}
	netlistFlag = &cli.StringFlag{
		Name:  "netlist",
		Usage: "path to the netlist CSV",
	}
	problemSettingsFlag = &cli.StringFlag{
		Name:  "problem_settings",
		Usage: "path to the problem-settings YAML",
	}
	reservedAreasFlag = &cli.StringFlag{
		Name:  "reserved_areas",
		Usage: "path to the reserved-areas CSV",
	}
	layerFlag = &cli.StringFlag{
		Name:  "layer",
		Usage: "target routing layer (D1 or D2)",
	}
	algorithmFlag = &cli.StringFlag{
		Name:  "algorithm",
		Usage: "channel-routing algorithm: le, cap, or ccap",
	}
	gcoFlag = &cli.BoolFlag{
		Name:  "gco",
		Usage: "order routing areas by congestion before each pick (GCO) for le and cap; ccap always does",
	}
	saveDirFlag = &cli.StringFlag{
		Name:  "save_dir",
		Usage: "directory to write routing_result.json and the utilization heatmap into",
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "launch an interactive viewer of the finished layout instead of exiting after the run",
	}
	plotFlag = &cli.BoolFlag{
		Name:  "plot",
		Value: true,
		Usage: "write a utilization heatmap alongside the JSON result",
	}
)

func validateLayer(layer string) error {
	if layer != "D1" && layer != "D2" {
		return fmt.Errorf("cli: --layer must be D1 or D2, got %q", layer)
	}
	return nil
}

func validateAlgorithm(algorithm string) error {
	switch algorithm {
	case "le", "cap", "ccap":
		return nil
	default:
		return fmt.Errorf("cli: --algorithm must be one of le, cap, ccap, got %q", algorithm)
	}
}

// resolveProfile loads the run profile named by --profile (or the built-in
// defaults when no profile is given) and overlays any flags the user set
// explicitly on the command line.
func resolveProfile(c *cli.Context) (config.RunProfile, error) {
	profile, err := config.LoadRunProfile(c.String(profileFlag.Name))
	if err != nil {
		return config.RunProfile{}, err
	}

	if c.IsSet(netlistFlag.Name) {
		profile.Netlist = c.String(netlistFlag.Name)
	}
	if c.IsSet(problemSettingsFlag.Name) {
		profile.ProblemSettings = c.String(problemSettingsFlag.Name)
	}
	if c.IsSet(reservedAreasFlag.Name) {
		profile.ReservedAreas = c.String(reservedAreasFlag.Name)
	}
	if c.IsSet(layerFlag.Name) {
		profile.Layer = c.String(layerFlag.Name)
	}
	if c.IsSet(algorithmFlag.Name) {
		profile.Algorithm = c.String(algorithmFlag.Name)
	}
	if c.IsSet(gcoFlag.Name) {
		profile.Gco = c.Bool(gcoFlag.Name)
	}
	if c.IsSet(saveDirFlag.Name) {
		profile.SaveDir = c.String(saveDirFlag.Name)
	}

	if err := validateLayer(profile.Layer); err != nil {
		return config.RunProfile{}, err
	}
	if err := validateAlgorithm(profile.Algorithm); err != nil {
		return config.RunProfile{}, err
	}

	return profile, nil
}

func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now()
	}
	return t
}

// App is the router's top-level command-line application.
var App = &cli.App{
	Name:     "gcr",
	Usage:    "gap and channel router",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Flags: []cli.Flag{
		profileFlag,
		netlistFlag,
		problemSettingsFlag,
		reservedAreasFlag,
		layerFlag,
		algorithmFlag,
		gcoFlag,
		saveDirFlag,
		plotFlag,
		tuiFlag,
	},
	Action: runRoute,
}
