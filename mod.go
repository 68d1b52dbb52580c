package delayplot

import (
	"fmt"
	"io"
	"os"

	"github.com/buger/goterm"
	log "github.com/sirupsen/logrus"
	"go.dedis.ch/delayplot/experiment"
	"go.dedis.ch/delayplot/results"
	"gonum.org/v1/plot"
	"golang.org/x/xerrors"
)

// Renderer draws the figures of the experiments and writes them as images.
type Renderer interface {
	// BarChart draws the rows of an experiment group that are already
	// selected, relabeled and sorted.
	BarChart(e experiment.Experiment, rows results.Table) (*plot.Plot, error)

	// Heatmap draws the pivot of an experiment group.
	Heatmap(e experiment.Experiment, m *results.Matrix) (*plot.Plot, error)

	// Save writes the image of the plot and returns its path.
	Save(p *plot.Plot, name string) (string, error)
}

// Pipeline loads, selects, relabels and reshapes the analysis results of each
// experiment group before giving them to the renderer.
type Pipeline struct {
	table        results.Table
	renderer     Renderer
	substitution results.Substitution
	writer       io.Writer
}

// NewPipeline creates a pipeline over the table of results.
func NewPipeline(table results.Table, r Renderer) *Pipeline {
	return &Pipeline{
		table:        table,
		renderer:     r,
		substitution: results.DefaultSubstitution(),
		writer:       os.Stdout,
	}
}

// BarRows returns the rows of the bar chart of the experiment: the rows of the
// flow in the group, labeled with the case ordinal and sorted by network and
// case.
func (pl *Pipeline) BarRows(flow string, e experiment.Experiment) results.Table {
	selected := e.Selection(flow, results.BarRules).Apply(pl.table)

	rows := e.CaseLabels().Apply(selected, results.ColumnCase).SortBars()

	for _, label := range rows.Distinct(results.ColumnCase) {
		if len(label) > 1 {
			log.WithFields(log.Fields{"experiment": e.Name, "case": label}).
				Warn("case label is not a single digit, the lexical order may not follow the case number")
		}
	}

	return rows
}

// HeatmapRows returns the rows of the heatmap of the experiment, after the
// project-wide renaming of the networks and the flows.
func (pl *Pipeline) HeatmapRows(e experiment.Experiment) results.Table {
	renamed := pl.substitution.Apply(pl.table)

	return e.Selection("", results.HeatmapRules).Apply(renamed)
}

// HeatmapMatrix returns the pivot of the rows of the heatmap of the
// experiment.
func (pl *Pipeline) HeatmapMatrix(e experiment.Experiment) (*results.Matrix, error) {
	m, err := results.Pivot(pl.HeatmapRows(e))
	if err != nil {
		return nil, xerrors.Errorf("couldn't pivot experiment '%s': %w", e.Name, err)
	}

	return m, nil
}

// RunBars draws the bar chart of every experiment of the configuration and
// returns the paths of the images.
func (pl *Pipeline) RunBars(cfg experiment.Config) ([]string, error) {
	paths := make([]string, 0, len(cfg.Bars))

	for _, e := range cfg.Bars {
		pl.progress(e)

		rows := pl.BarRows(cfg.Flow, e)
		if rows.Len() == 0 {
			pl.warnEmpty(e)
		}

		p, err := pl.renderer.BarChart(e, rows)
		if err != nil {
			pl.failed(e)
			return nil, xerrors.Errorf("couldn't draw experiment '%s': %v", e.Name, err)
		}

		path, err := pl.save(p, e)
		if err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// RunHeatmaps draws the heatmap of every experiment of the configuration and
// returns the paths of the images. A duplicated flow in a dataset case stops
// the run.
func (pl *Pipeline) RunHeatmaps(cfg experiment.Config) ([]string, error) {
	paths := make([]string, 0, len(cfg.Heatmaps))

	for _, e := range cfg.Heatmaps {
		pl.progress(e)

		m, err := pl.HeatmapMatrix(e)
		if err != nil {
			pl.failed(e)
			return nil, err
		}

		if m.Empty() {
			pl.warnEmpty(e)
		}

		p, err := pl.renderer.Heatmap(e, m)
		if err != nil {
			pl.failed(e)
			return nil, xerrors.Errorf("couldn't draw experiment '%s': %v", e.Name, err)
		}

		path, err := pl.save(p, e)
		if err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func (pl *Pipeline) save(p *plot.Plot, e experiment.Experiment) (string, error) {
	path, err := pl.renderer.Save(p, e.Name)
	if err != nil {
		pl.failed(e)
		return "", xerrors.Errorf("couldn't save experiment '%s': %v", e.Name, err)
	}

	fmt.Fprintln(pl.writer, goterm.ResetLine(fmt.Sprintf("Rendering %s... ok (%s)", e.Name, path)))

	return path, nil
}

func (pl *Pipeline) progress(e experiment.Experiment) {
	fmt.Fprintf(pl.writer, "Rendering %s...", e.Name)
}

func (pl *Pipeline) failed(e experiment.Experiment) {
	fmt.Fprintln(pl.writer, goterm.ResetLine(fmt.Sprintf("Rendering %s... failed", e.Name)))
}

func (pl *Pipeline) warnEmpty(e experiment.Experiment) {
	log.WithFields(log.Fields{"experiment": e.Name, "group": e.Group}).
		Warn("no result matches the experiment group")
}
