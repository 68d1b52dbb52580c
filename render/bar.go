package render

import (
	"fmt"
	"math"

	"go.dedis.ch/delayplot/experiment"
	"go.dedis.ch/delayplot/results"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const (
	barWidth vg.Length = 18
	// barHeadroom grows the Y axis so that the vertical labels of the highest
	// bars fit in the figure.
	barHeadroom = 1.3
	labelFormat = "%.1f"
)

// series is the values of a network for each category of the X axis.
type series struct {
	values plotter.Values
	labels plotter.XYLabels
}

// BarChart draws the delays of the rows grouped by case on the X axis and
// by network inside each group. The rows are expected to be selected,
// relabeled with the case ordinal and sorted.
func (r *Renderer) BarChart(e experiment.Experiment, rows results.Table) (*plot.Plot, error) {
	p, err := r.newPlot(e.Title, e.XLabel, e.YLabel)
	if err != nil {
		return nil, err
	}

	p.Y.Min = 0
	p.Legend.Top = true

	categories := rows.Distinct(results.ColumnCase)
	networks := rows.Distinct(results.ColumnNetwork)
	if len(categories) == 0 {
		return p, nil
	}

	colors := seriesColors(len(networks))
	groupWidth := barWidth * vg.Length(len(networks)-1)

	for i, network := range networks {
		s := makeSeries(rows.Select(results.ByNetwork(network)), categories)
		offset := barWidth*vg.Length(i) - groupWidth/2

		bars, err := plotter.NewBarChart(s.values, barWidth)
		if err != nil {
			return nil, err
		}

		bars.Offset = offset
		bars.Color = colors[i]
		bars.LineStyle.Width = 0

		r.processor(p, bars)
		p.Legend.Add(network, bars)

		if len(s.labels.Labels) == 0 {
			continue
		}

		labels, err := plotter.NewLabels(s.labels)
		if err != nil {
			return nil, err
		}

		for j := range labels.TextStyle {
			labels.TextStyle[j].Rotation = math.Pi / 2
			labels.TextStyle[j].XAlign = text.XLeft
			labels.TextStyle[j].YAlign = text.YCenter
			labels.TextStyle[j].Font.Size = vg.Points(8)
		}
		labels.Offset = vg.Point{X: offset, Y: vg.Points(2)}

		r.processor(p, labels)
	}

	p.NominalX(tickLabels(e.TickLabels, categories)...)
	p.Y.Max *= barHeadroom

	return p, nil
}

// makeSeries returns the values of the rows for each category. A category
// without a row has a zero-height bar without label, and several rows of the
// same category are averaged.
func makeSeries(rows results.Table, categories []string) series {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range rows {
		if row.Missing() {
			continue
		}

		sums[row.Case] += row.Delay
		counts[row.Case]++
	}

	s := series{
		values: make(plotter.Values, len(categories)),
	}

	for i, category := range categories {
		n := counts[category]
		if n == 0 {
			continue
		}

		value := sums[category] / float64(n)
		s.values[i] = value
		s.labels.XYs = append(s.labels.XYs, plotter.XY{X: float64(i), Y: value})
		s.labels.Labels = append(s.labels.Labels, fmt.Sprintf(labelFormat, value))
	}

	return s
}

// tickLabels returns the configured labels of the categories. Categories
// without a configured label keep their own name.
func tickLabels(configured, categories []string) []string {
	ticks := make([]string, len(categories))
	for i, category := range categories {
		if i < len(configured) {
			ticks[i] = configured[i]
		} else {
			ticks[i] = category
		}
	}

	return ticks
}
