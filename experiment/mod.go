package experiment

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/delayplot/results"
	"golang.org/x/xerrors"
)

const (
	// DefaultFlow is the flow compared in the bar charts.
	DefaultFlow = "tt11"

	heatmapXLabel = "Scheduling Cases"
	heatmapYLabel = "Flow"
)

// Experiment describes an experiment group and how its figure looks like.
type Experiment struct {
	// Name is used as the base name of the output file.
	Name string `toml:"name"`
	// Group is the prefix of the dataset cases of the group, e.g. "1-".
	Group  string `toml:"group"`
	Title  string `toml:"title"`
	XLabel string `toml:"xlabel"`
	YLabel string `toml:"ylabel"`
	// Cases is the number of cases of the group.
	Cases int `toml:"cases"`
	// TickLabels are the labels of the categories of the X axis.
	TickLabels []string `toml:"ticks"`
	// RowLabels are the labels of the rows of a heatmap from top to bottom.
	RowLabels []string `toml:"rows"`
	// ScaleMin and ScaleMax fix the bounds of the color scale of a heatmap.
	// The scale follows the data when they are not set.
	ScaleMin *float64 `toml:"scale_min"`
	ScaleMax *float64 `toml:"scale_max"`
}

// Selection returns the selection of the rows of the experiment group.
func (e Experiment) Selection(flow string, rules results.AnalysisRules) results.Selection {
	return results.Selection{
		Flow:  flow,
		Group: e.Group,
		Rules: rules,
	}
}

// CaseLabels returns the relabeling of the dataset cases of the group to the
// ordinal of the case.
func (e Experiment) CaseLabels() results.Relabeler {
	return results.CaseLabels(e.Group, e.Cases, results.MA1, results.MA2, results.Baseline)
}

// FixedScale returns the bounds of the color scale and true when both are
// configured.
func (e Experiment) FixedScale() (float64, float64, bool) {
	if e.ScaleMin == nil || e.ScaleMax == nil {
		return 0, 0, false
	}

	return *e.ScaleMin, *e.ScaleMax, true
}

// Config is the list of experiments drawn by each kind of figure.
type Config struct {
	Flow     string       `toml:"flow"`
	Bars     []Experiment `toml:"bars"`
	Heatmaps []Experiment `toml:"heatmaps"`
}

type group struct {
	title string
	cases int
}

var groups = []group{
	{title: "Different Overlapping Scenarios", cases: 4},
	{title: "Different Lengths of Open Windows", cases: 3},
	{title: "Different Open-Close Cycles", cases: 3},
	{title: "Different Priority Assigned", cases: 3},
}

// DefaultConfig returns the four experiment groups of the delay analysis.
func DefaultConfig() Config {
	return Config{
		Flow:     DefaultFlow,
		Bars:     DefaultBars(DefaultFlow),
		Heatmaps: DefaultHeatmaps(),
	}
}

// DefaultBars returns the bar charts of the flow for each experiment group.
func DefaultBars(flow string) []Experiment {
	experiments := make([]Experiment, len(groups))
	for i, g := range groups {
		ticks := make([]string, g.cases)
		for j := range ticks {
			ticks[j] = fmt.Sprintf("Case %d", j+1)
		}

		experiments[i] = Experiment{
			Name:       fmt.Sprintf("bars-experiment%d", i+1),
			Group:      fmt.Sprintf("%d-", i+1),
			XLabel:     fmt.Sprintf("Experiment %d - %s", i+1, g.title),
			YLabel:     fmt.Sprintf("Worst Case Delay (µs) - Flow %s", flow),
			Cases:      g.cases,
			TickLabels: ticks,
		}
	}

	return experiments
}

// DefaultHeatmaps returns the heatmaps of every flow for each experiment
// group. Only the first one has a fixed color scale that covers the values of
// both multi-access networks.
func DefaultHeatmaps() []Experiment {
	rows := make([]string, 13)
	for i := range rows {
		rows[i] = fmt.Sprintf("tt%d", i+1)
	}

	experiments := make([]Experiment, len(groups))
	for i, g := range groups {
		ticks := make([]string, 0, 2*g.cases)
		for j := 1; j <= g.cases; j++ {
			ticks = append(ticks, fmt.Sprintf("MA1\nCase %d", j), fmt.Sprintf("MA2\nCase %d", j))
		}

		experiments[i] = Experiment{
			Name:       fmt.Sprintf("heatmap-experiment%d", i+1),
			Group:      fmt.Sprintf("%d-", i+1),
			Title:      fmt.Sprintf("Experiment %d - %s", i+1, g.title),
			XLabel:     heatmapXLabel,
			YLabel:     heatmapYLabel,
			Cases:      g.cases,
			TickLabels: ticks,
			RowLabels:  rows,
		}
	}

	low, high := 343.5, 3842.1
	experiments[0].ScaleMin = &low
	experiments[0].ScaleMax = &high

	return experiments
}

// LoadConfig reads the TOML file at the given path. Keys absent from the file
// keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}

	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, xerrors.Errorf("couldn't decode config '%s': %v", path, err)
	}

	return cfg.withDefaults(), nil
}

func (cfg Config) withDefaults() Config {
	if cfg.Flow == "" {
		cfg.Flow = DefaultFlow
	}

	if len(cfg.Bars) == 0 {
		cfg.Bars = DefaultBars(cfg.Flow)
	}

	if len(cfg.Heatmaps) == 0 {
		cfg.Heatmaps = DefaultHeatmaps()
	}

	return cfg
}
