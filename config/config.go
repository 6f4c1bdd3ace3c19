// Package config loads the two configuration layers the router needs: a
// mandatory YAML problem-settings file describing the routing geometry
// (gap/subchannel layout, widths, blockages), and an optional TOML
// run-profile supplying default CLI flag values.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/BurntSushi/toml"

	"github.com/edalab/gcr/containers"
	"github.com/edalab/gcr/entities"
	"github.com/edalab/gcr/geom"
	"github.com/edalab/gcr/routeerr"
	"github.com/edalab/gcr/routingarea"
)

// yamlDecimal decodes a YAML scalar (quoted or bare) into an exact
// geom.Decimal rather than letting yaml.v3 round-trip it through float64,
// which would silently lose precision on values like "0.1".
type yamlDecimal geom.Decimal

func (d *yamlDecimal) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := geom.ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = yamlDecimal(parsed)
	return nil
}

func (d yamlDecimal) decimal() geom.Decimal { return geom.Decimal(d) }

func decimalMap(m map[string]yamlDecimal) map[string]geom.Decimal {
	out := make(map[string]geom.Decimal, len(m))
	for k, v := range m {
		out[k] = v.decimal()
	}
	return out
}

// rawPin mirrors one entry of problem_settings.yaml's avoid_points map.
type rawPin struct {
	X yamlDecimal `yaml:"x"`
	Y yamlDecimal `yaml:"y"`
}

// rawXInterval mirrors one entry of blockage_x_intervals/subchannel_x_intervals.
type rawXInterval struct {
	XMin yamlDecimal `yaml:"x_min"`
	XMax yamlDecimal `yaml:"x_max"`
}

// rawProblemSettings is the on-disk YAML shape, decoded verbatim before
// being reshaped into ProblemSettings' derived, layer-aware form.
type rawProblemSettings struct {
	NumGaps              int                          `yaml:"num_gaps"`
	NumSubchannels       int                          `yaml:"num_subchannels"`
	GapYInterval         yamlDecimal                  `yaml:"gap_y_interval"`
	YBottomBlockage      yamlDecimal                  `yaml:"y_bottom_blockage"`
	AvoidPoints          map[string]rawPin            `yaml:"avoid_points"`
	BlockageXIntervals   []rawXInterval               `yaml:"blockage_x_intervals"`
	SubchannelXIntervals []rawXInterval               `yaml:"subchannel_x_intervals"`
	GapWidth             map[string]yamlDecimal       `yaml:"gap_width"`
	ShieldWidth          map[string]yamlDecimal       `yaml:"shield_width"`
	SubchannelWidth      map[string]yamlDecimal       `yaml:"subchannel_width"`
	FixNetGroup          map[string]map[string]string `yaml:"fix_net_group"`
}

// ProblemSettings is the fully-resolved, layer-independent-plus-target-layer
// view of a run's geometry: everything preprocess/schedule/channel/route
// need to build routing areas and classify net groups. It mirrors the
// Python original's ProblemSettings class, folding args.layer/args.algorithm/
// args.gco/args.save_dir/args.reserved_areas in at load time rather than
// keeping a separate argparse Namespace around.
type ProblemSettings struct {
	ReservedAreasFile string
	AlgorithmName     string
	UseGco            bool
	TargetLayer       string
	SaveDir           string

	NGaps           int
	NSubchannels    int
	Interval        geom.Decimal
	YBottomBlockage geom.Decimal

	AvoidPoints          map[string]entities.Pin
	BlockageXIntervals   []geom.Interval
	SubchannelXIntervals []geom.Interval

	GapWidthDict        map[string]geom.Decimal
	ShieldWidthDict     map[string]geom.Decimal
	SubchannelWidthDict map[string]geom.Decimal

	// FixNetGroupDict maps a net group name to a set of property overrides;
	// values are interpreted by the caller that consumes net groups, not by
	// ProblemSettings itself (netio applies only the "space" key).
	FixNetGroupDict map[string]map[string]string
}

// LoadProblemSettings reads and validates a problem-settings YAML file,
// combining it with the run-time arguments the original takes from argparse
// (reserved-areas file, algorithm name, GCO flag, target layer, save dir).
func LoadProblemSettings(path, reservedAreasFile, algorithmName, targetLayer, saveDir string, useGco bool) (*ProblemSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading problem settings %q: %w", path, err)
	}

	var raw rawProblemSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parsing problem settings %q: %w", path, err)
	}

	ps := &ProblemSettings{
		ReservedAreasFile:   reservedAreasFile,
		AlgorithmName:       algorithmName,
		UseGco:              useGco,
		TargetLayer:         targetLayer,
		SaveDir:             saveDir,
		NGaps:               raw.NumGaps,
		NSubchannels:        raw.NumSubchannels,
		Interval:            raw.GapYInterval.decimal(),
		YBottomBlockage:     raw.YBottomBlockage.decimal(),
		AvoidPoints:         make(map[string]entities.Pin, len(raw.AvoidPoints)),
		GapWidthDict:        decimalMap(raw.GapWidth),
		ShieldWidthDict:     decimalMap(raw.ShieldWidth),
		SubchannelWidthDict: decimalMap(raw.SubchannelWidth),
		FixNetGroupDict:     raw.FixNetGroup,
	}

	for k, v := range raw.AvoidPoints {
		ps.AvoidPoints[k] = entities.Pin{X: v.X.decimal(), Y: v.Y.decimal()}
	}

	ps.BlockageXIntervals = make([]geom.Interval, len(raw.BlockageXIntervals))
	for i, v := range raw.BlockageXIntervals {
		ps.BlockageXIntervals[i] = geom.NewInterval(v.XMin.decimal(), v.XMax.decimal())
	}
	sort.Slice(ps.BlockageXIntervals, func(i, j int) bool {
		return ps.BlockageXIntervals[i].Begin.LessThan(ps.BlockageXIntervals[j].Begin)
	})

	ps.SubchannelXIntervals = make([]geom.Interval, len(raw.SubchannelXIntervals))
	for i, v := range raw.SubchannelXIntervals {
		ps.SubchannelXIntervals[i] = geom.NewInterval(v.XMin.decimal(), v.XMax.decimal())
	}
	sort.Slice(ps.SubchannelXIntervals, func(i, j int) bool {
		return ps.SubchannelXIntervals[i].Begin.LessThan(ps.SubchannelXIntervals[j].Begin)
	})

	if _, ok := ps.GapWidthDict[targetLayer]; !ok {
		return nil, fmt.Errorf("config: %w: no gap_width entry for layer %q", routeerr.ErrInvalidInput, targetLayer)
	}

	return ps, nil
}

// ShieldWidth returns the target layer's shield width.
func (p *ProblemSettings) ShieldWidth() geom.Decimal {
	return p.ShieldWidthDict[p.TargetLayer]
}

// GapWidth returns the target layer's gap width.
func (p *ProblemSettings) GapWidth() geom.Decimal {
	return p.GapWidthDict[p.TargetLayer]
}

// GapInterval is the vertical spacing between consecutive gaps, net of the
// gap's own width.
func (p *ProblemSettings) GapInterval() geom.Decimal {
	return p.Interval.Sub(p.GapWidthDict[p.TargetLayer])
}

// GapHeight returns the baseline y of the i-th gap (0-indexed).
func (p *ProblemSettings) GapHeight(i int) geom.Decimal {
	n := geom.MustDecimal(fmt.Sprintf("%d", i+1))
	m := geom.MustDecimal(fmt.Sprintf("%d", i))
	return p.YBottomBlockage.Add(n.Mul(p.GapInterval())).Add(m.Mul(p.GapWidth()))
}

// GenerateGap builds a single gap of the target layer's width, positioned
// at the origin; used where only the width matters and placement is the
// caller's responsibility.
func (p *ProblemSettings) GenerateGap() *routingarea.RoutingArea {
	return routingarea.New(0, p.GapWidth(), geom.Zero)
}

// GenerateGaps builds the full ladder of NGaps routing areas, stacked at
// GapHeight(i) for i in [0, NGaps).
func (p *ProblemSettings) GenerateGaps() []*routingarea.RoutingArea {
	gaps := make([]*routingarea.RoutingArea, p.NGaps)
	for i := 0; i < p.NGaps; i++ {
		gaps[i] = routingarea.New(i, p.GapWidth(), p.GapHeight(i))
	}
	return gaps
}

// NumSubchannelCols is the number of local-routing columns, one per
// subchannel x-interval.
func (p *ProblemSettings) NumSubchannelCols() int {
	return len(p.SubchannelXIntervals)
}

// SubchannelWidth returns the target layer's subchannel width.
func (p *ProblemSettings) SubchannelWidth() geom.Decimal {
	return p.SubchannelWidthDict[p.TargetLayer]
}

// SubchannelInterval is the vertical pitch between consecutive
// subchannels within one column: unlike GapInterval it is not reduced by
// the area's own width, so subchannel baselines step by exactly Interval.
func (p *ProblemSettings) SubchannelInterval() geom.Decimal {
	return p.Interval
}

// SubchannelHeight returns the baseline y of the i-th subchannel within a
// column (0-indexed).
func (p *ProblemSettings) SubchannelHeight(i int) geom.Decimal {
	m := geom.MustDecimal(fmt.Sprintf("%d", i))
	return p.YBottomBlockage.Add(m.Mul(p.SubchannelInterval()))
}

// GenerateSubchannel builds a single subchannel of the target layer's
// width, positioned at the origin.
func (p *ProblemSettings) GenerateSubchannel() *routingarea.RoutingArea {
	return routingarea.New(0, p.SubchannelWidth(), geom.Zero)
}

// GenerateSubchannels builds the ladder of NSubchannels routing areas for
// one local-routing column.
func (p *ProblemSettings) GenerateSubchannels() []*routingarea.RoutingArea {
	subchannels := make([]*routingarea.RoutingArea, p.NSubchannels)
	for i := 0; i < p.NSubchannels; i++ {
		subchannels[i] = routingarea.New(i, p.SubchannelWidth(), p.SubchannelHeight(i))
	}
	return subchannels
}

// GenerateOID builds the OverlappedIntervalDict for a net group, using this
// run's target-layer shield width.
func (p *ProblemSettings) GenerateOID(netlist []*entities.Net) (*containers.OID, error) {
	return containers.NewOIDFromNetlist(netlist, p.ShieldWidth())
}

// RunProfile supplies default CLI flag values so a repeated run doesn't
// need to restate them on the command line every time. The fields are the
// original router's command-line arguments; the TOML file backing them is
// this port's own addition.
type RunProfile struct {
	Netlist         string `toml:"netlist"`
	ProblemSettings string `toml:"problem_settings"`
	ReservedAreas   string `toml:"reserved_areas"`
	Layer           string `toml:"layer"`
	Algorithm       string `toml:"algorithm"`
	Gco             bool   `toml:"gco"`
	SaveDir         string `toml:"save_dir"`
}

// DefaultRunProfile mirrors the Python original's argparse defaults
// (src/main.py:get_args), used whenever no profile file is given or a
// field is left unset in one.
func DefaultRunProfile() RunProfile {
	return RunProfile{
		Netlist:         "assets/input/netlist.csv",
		ProblemSettings: "assets/input/problem_settings.yaml",
		ReservedAreas:   "assets/input/reserved_areas.csv",
		Layer:           "D1",
		Algorithm:       "ccap",
		Gco:             false,
		SaveDir:         "assets/output/",
	}
}

// LoadRunProfile reads a TOML run-profile file, overlaying it onto
// DefaultRunProfile for any field the file omits.
func LoadRunProfile(path string) (RunProfile, error) {
	profile := DefaultRunProfile()
	if path == "" {
		return profile, nil
	}
	if _, err := toml.DecodeFile(path, &profile); err != nil {
		return RunProfile{}, fmt.Errorf("config: parsing run profile %q: %w", path, err)
	}
	return profile, nil
}
