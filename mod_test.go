package delayplot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/delayplot/experiment"
	"go.dedis.ch/delayplot/results"
	"gonum.org/v1/plot"
	"golang.org/x/xerrors"
)

type testRenderer struct {
	bars     map[string]results.Table
	heatmaps map[string]*results.Matrix
	saved    []string

	errDraw error
	errSave error
}

func newTestRenderer() *testRenderer {
	return &testRenderer{
		bars:     make(map[string]results.Table),
		heatmaps: make(map[string]*results.Matrix),
	}
}

func (r *testRenderer) BarChart(e experiment.Experiment, rows results.Table) (*plot.Plot, error) {
	if r.errDraw != nil {
		return nil, r.errDraw
	}

	r.bars[e.Name] = rows
	return plot.New(), nil
}

func (r *testRenderer) Heatmap(e experiment.Experiment, m *results.Matrix) (*plot.Plot, error) {
	if r.errDraw != nil {
		return nil, r.errDraw
	}

	r.heatmaps[e.Name] = m
	return plot.New(), nil
}

func (r *testRenderer) Save(p *plot.Plot, name string) (string, error) {
	if r.errSave != nil {
		return "", r.errSave
	}

	r.saved = append(r.saved, name)
	return name + ".png", nil
}

func makeRow(flow, datasetCase, network, typ string, delay float64) results.Row {
	return results.Row{Flow: flow, Case: datasetCase, Network: network, Type: typ, Delay: delay}
}

func makeTable() results.Table {
	return results.Table{
		makeRow("tt11", "1-1-MA1", results.MA1, results.SFA, 500),
		makeRow("tt11", "1-1-MA1", results.MA1, results.TFA, 510),
		makeRow("tt11", "1-1-Baseline", results.Baseline, results.TFA, 600),
		makeRow("tt11", "1-1-MA2", results.MA2, results.SFA, 450),
		makeRow("tt11", "1-2-MA2", results.MA2, results.SFA, 460),
		makeRow("tt1", "1-1-MA1", results.MA1, results.SFA, 100),
		makeRow("tt10", "2-1-1000BASE-TX", results.Raw1000BaseTX, results.SFA, 200),
	}
}

func newTestPipeline(r Renderer) (*Pipeline, *bytes.Buffer) {
	pl := NewPipeline(makeTable(), r)
	out := new(bytes.Buffer)
	pl.writer = out

	return pl, out
}

func TestPipeline_BarRows(t *testing.T) {
	pl, _ := newTestPipeline(newTestRenderer())

	rows := pl.BarRows("tt11", experiment.DefaultBars("tt11")[0])
	require.Equal(t, results.Table{
		makeRow("tt11", "1", results.Baseline, results.TFA, 600),
		makeRow("tt11", "1", results.MA1, results.SFA, 500),
		makeRow("tt11", "1", results.MA2, results.SFA, 450),
		makeRow("tt11", "2", results.MA2, results.SFA, 460),
	}, rows)
}

func TestPipeline_HeatmapRows(t *testing.T) {
	pl, _ := newTestPipeline(newTestRenderer())

	heatmaps := experiment.DefaultHeatmaps()

	rows := pl.HeatmapRows(heatmaps[0])
	require.Len(t, rows, 4)
	for _, row := range rows {
		require.NotEqual(t, results.Baseline, row.Network)
		require.Equal(t, results.SFA, row.Type)
	}
	require.Equal(t, "ttB", rows[0].Flow)

	rows = pl.HeatmapRows(heatmaps[1])
	require.Equal(t, results.Table{makeRow("ttA", "2-1-MA1", results.MA1, results.SFA, 200)}, rows)
}

func TestPipeline_RunBars(t *testing.T) {
	r := newTestRenderer()
	pl, out := newTestPipeline(r)

	paths, err := pl.RunBars(experiment.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []string{
		"bars-experiment1.png",
		"bars-experiment2.png",
		"bars-experiment3.png",
		"bars-experiment4.png",
	}, paths)

	require.Len(t, r.bars["bars-experiment1"], 4)
	require.Len(t, r.bars["bars-experiment2"], 0)
	require.Contains(t, out.String(), "Rendering bars-experiment4... ok")
}

func TestPipeline_RunHeatmaps(t *testing.T) {
	r := newTestRenderer()
	pl, _ := newTestPipeline(r)

	paths, err := pl.RunHeatmaps(experiment.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, paths, 4)

	m := r.heatmaps["heatmap-experiment1"]
	require.Equal(t, []string{"tt1", "ttB"}, m.Rows())
	require.Equal(t, []string{"1-1-MA1", "1-1-MA2", "1-2-MA2"}, m.Columns())

	require.True(t, r.heatmaps["heatmap-experiment3"].Empty())
}

func TestPipeline_RunHeatmapsDuplicate(t *testing.T) {
	r := newTestRenderer()
	pl, out := newTestPipeline(r)
	pl.table = append(pl.table, makeRow("tt11", "1-1-MA1", results.MA1, results.SFA, 999))

	_, err := pl.RunHeatmaps(experiment.DefaultConfig())
	require.Error(t, err)
	require.True(t, xerrors.Is(err, results.ErrDuplicatePair))
	require.Contains(t, out.String(), "failed")
	require.Len(t, r.saved, 0)
}

func TestPipeline_Failures(t *testing.T) {
	r := newTestRenderer()
	pl, _ := newTestPipeline(r)

	r.errDraw = errors.New("draw")
	_, err := pl.RunBars(experiment.DefaultConfig())
	require.Error(t, err)
	require.Contains(t, err.Error(), "draw")

	_, err = pl.RunHeatmaps(experiment.DefaultConfig())
	require.Error(t, err)
	require.Contains(t, err.Error(), "draw")

	r.errDraw = nil
	r.errSave = errors.New("save")
	_, err = pl.RunBars(experiment.DefaultConfig())
	require.Error(t, err)
	require.Contains(t, err.Error(), "save")

	_, err = pl.RunHeatmaps(experiment.DefaultConfig())
	require.Error(t, err)
	require.Contains(t, err.Error(), "save")
}
