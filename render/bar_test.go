package render

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/delayplot/experiment"
	"go.dedis.ch/delayplot/results"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func makeBarExperiment() experiment.Experiment {
	return experiment.DefaultBars("tt11")[0]
}

func makeBarRows() results.Table {
	return results.Table{
		{Flow: "tt11", Case: "1", Network: results.Baseline, Type: results.TFA, Delay: 600},
		{Flow: "tt11", Case: "2", Network: results.Baseline, Type: results.TFA, Delay: 300},
		{Flow: "tt11", Case: "1", Network: results.MA1, Type: results.SFA, Delay: 500},
		{Flow: "tt11", Case: "1", Network: results.MA2, Type: results.SFA, Delay: 450},
	}
}

func TestBarChart_Process(t *testing.T) {
	r := NewRenderer()

	var added []plot.Plotter
	r.processor = func(p *plot.Plot, ps ...plot.Plotter) {
		added = append(added, ps...)
	}

	p, err := r.BarChart(makeBarExperiment(), makeBarRows())
	require.NoError(t, err)
	require.NotNil(t, p)

	// One bar chart and one set of labels per network.
	require.Len(t, added, 6)

	baseline := added[0].(*plotter.BarChart)
	require.Equal(t, 2, baseline.Values.Len())
	require.Equal(t, 600.0, baseline.Values.Value(0))
	require.Equal(t, 300.0, baseline.Values.Value(1))

	labels := added[1].(*plotter.Labels)
	require.Equal(t, []string{"600.0", "300.0"}, labels.Labels)

	ma1 := added[2].(*plotter.BarChart)
	require.Equal(t, 500.0, ma1.Values.Value(0))
	require.Equal(t, 0.0, ma1.Values.Value(1))
	require.Equal(t, []string{"500.0"}, added[3].(*plotter.Labels).Labels)

	// Bars of the same case are dodged around the tick.
	require.Equal(t, -barWidth, baseline.Offset)
	require.Equal(t, vg.Length(0), ma1.Offset)
	require.Equal(t, barWidth, added[4].(*plotter.BarChart).Offset)

	ticks := p.X.Tick.Marker.Ticks(0, 1)
	require.Equal(t, "Case 1", ticks[0].Label)
	require.Equal(t, "Case 2", ticks[1].Label)
}

func TestBarChart_Headroom(t *testing.T) {
	r := NewRenderer()

	p, err := r.BarChart(makeBarExperiment(), makeBarRows())
	require.NoError(t, err)
	require.Equal(t, 0.0, p.Y.Min)
	require.InDelta(t, 600*barHeadroom, p.Y.Max, 1e-9)
	require.Equal(t, "Experiment 1 - Different Overlapping Scenarios", p.X.Label.Text)
}

func TestBarChart_Empty(t *testing.T) {
	dir, err := ioutil.TempDir(os.TempDir(), "render")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	r := NewRenderer(WithOutputDir(dir))

	called := false
	r.processor = func(p *plot.Plot, ps ...plot.Plotter) {
		called = true
	}

	p, err := r.BarChart(makeBarExperiment(), results.Table{})
	require.NoError(t, err)
	require.NotNil(t, p)
	require.False(t, called)

	r.processor = addPlotters
	_, err = r.Save(p, "empty")
	require.NoError(t, err)
}

func TestBarChart_UnmappedCase(t *testing.T) {
	r := NewRenderer()

	var added []plot.Plotter
	r.processor = func(p *plot.Plot, ps ...plot.Plotter) {
		added = append(added, ps...)
	}

	rows := results.Table{
		{Flow: "tt11", Case: "1", Network: results.MA1, Type: results.SFA, Delay: 1},
		{Flow: "tt11", Case: "1-9-MA1", Network: results.MA1, Type: results.SFA, Delay: 2},
	}

	e := makeBarExperiment()
	e.TickLabels = []string{"Case 1"}

	p, err := r.BarChart(e, rows)
	require.NoError(t, err)

	ticks := p.X.Tick.Marker.Ticks(0, 1)
	require.Equal(t, "Case 1", ticks[0].Label)
	require.Equal(t, "1-9-MA1", ticks[1].Label)
}

func TestBarChart_Average(t *testing.T) {
	rows := results.Table{
		{Case: "1", Delay: 1},
		{Case: "1", Delay: 3},
	}

	s := makeSeries(rows, []string{"1", "2"})
	require.Equal(t, 2.0, s.values.Value(0))
	require.Equal(t, 0.0, s.values.Value(1))
	require.Equal(t, []string{"2.0"}, s.labels.Labels)
}
