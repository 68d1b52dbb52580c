package render

import (
	"fmt"
	"image/color"
	"math"

	"go.dedis.ch/delayplot/experiment"
	"go.dedis.ch/delayplot/results"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const (
	heatmapPalette = "YlGnBu"
	heatmapColors  = 9
	// darkThreshold is the position in the color scale after which the
	// annotations are written in white.
	darkThreshold = 0.6
)

// grid exposes the pivot matrix as a grid where the first flow is drawn at
// the top of the figure.
type grid struct {
	m *results.Matrix
}

func (g grid) Dims() (c, r int) {
	rows, cols := g.m.Dims()
	return cols, rows
}

func (g grid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g grid) X(c int) float64 {
	return float64(c)
}

func (g grid) Y(r int) float64 {
	return float64(r)
}

// Heatmap draws the matrix with one cell per flow and dataset case, annotated
// with its value. Missing cells are filled in black. The color scale is fixed
// when the experiment defines it, otherwise it follows the values.
func (r *Renderer) Heatmap(e experiment.Experiment, m *results.Matrix) (*plot.Plot, error) {
	p, err := r.newPlot(e.Title, e.XLabel, e.YLabel)
	if err != nil {
		return nil, err
	}

	if m == nil || m.Empty() {
		return p, nil
	}

	pal, err := brewer.GetPalette(brewer.TypeSequential, heatmapPalette, heatmapColors)
	if err != nil {
		return nil, err
	}

	g := grid{m: m}
	low, high := scaleOf(e, g)

	hm := plotter.NewHeatMap(g, pal)
	hm.Min = low
	hm.Max = high
	hm.NaN = color.Black
	hm.Underflow = pal.Colors()[0]
	hm.Overflow = pal.Colors()[len(pal.Colors())-1]

	r.processor(p, hm)

	labels, err := annotations(g, low, high)
	if err != nil {
		return nil, err
	}
	if labels != nil {
		r.processor(p, labels)
	}

	rows, cols := m.Dims()

	xticks := make([]plot.Tick, cols)
	for c, label := range tickLabels(e.TickLabels, m.Columns()) {
		xticks[c] = plot.Tick{Value: float64(c), Label: label}
	}

	yticks := make([]plot.Tick, rows)
	for i, label := range tickLabels(e.RowLabels, m.Rows()) {
		yticks[i] = plot.Tick{Value: float64(rows - 1 - i), Label: label}
	}

	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)
	p.X.Padding = 0
	p.Y.Padding = 0

	return p, nil
}

// scaleOf returns the bounds of the color scale. An empty range is widened so
// that the colors can be computed.
func scaleOf(e experiment.Experiment, g grid) (float64, float64) {
	if low, high, ok := e.FixedScale(); ok {
		return low, high
	}

	low, high := math.Inf(1), math.Inf(-1)
	cols, rows := g.Dims()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}

			low = math.Min(low, v)
			high = math.Max(high, v)
		}
	}

	if math.IsInf(low, 1) {
		return 0, 1
	}

	if low == high {
		return low - 0.5, high + 0.5
	}

	return low, high
}

// annotations creates the labels of the cells which have a value. It returns
// nil when there is none.
func annotations(g grid, low, high float64) (*plotter.Labels, error) {
	var xyl plotter.XYLabels
	var dark []bool

	cols, rows := g.Dims()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}

			xyl.XYs = append(xyl.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf(labelFormat, v))
			dark = append(dark, (v-low)/(high-low) > darkThreshold)
		}
	}

	if len(xyl.Labels) == 0 {
		return nil, nil
	}

	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}

	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(8)

		if dark[i] {
			labels.TextStyle[i].Color = color.White
		} else {
			labels.TextStyle[i].Color = color.Black
		}
	}

	return labels, nil
}

var _ plotter.GridXYZ = grid{}
