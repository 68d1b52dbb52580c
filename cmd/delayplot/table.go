package main

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.dedis.ch/delayplot"
	"go.dedis.ch/delayplot/experiment"
	"go.dedis.ch/delayplot/results"
	"golang.org/x/xerrors"
)

const missingCell = "-"

// printSummaries writes the statistics of the delays of each network for the
// heatmap selection of every experiment, followed by the statistics over all
// of them.
func printSummaries(w io.Writer, pl *delayplot.Pipeline, cfg experiment.Config) error {
	all := results.Table{}

	for _, e := range cfg.Heatmaps {
		rows := pl.HeatmapRows(e)
		all = append(all, rows...)

		writeTable(w, summaryTable(e.Title, results.Summarize(rows)))
	}

	writeTable(w, summaryTable("All experiments", results.Summarize(all)))

	return nil
}

// printExperiments writes the rows of each bar chart and the matrix of each
// heatmap.
func printExperiments(w io.Writer, pl *delayplot.Pipeline, cfg experiment.Config) error {
	for _, e := range cfg.Bars {
		t := newTable(e.XLabel)
		t.AppendHeader(table.Row{"Case", "Network", "Type", "Delay"})

		for _, row := range pl.BarRows(cfg.Flow, e) {
			t.AppendRow(table.Row{row.Case, row.Network, row.Type, formatDelay(row.Delay)})
		}

		writeTable(w, t)
	}

	for _, e := range cfg.Heatmaps {
		m, err := pl.HeatmapMatrix(e)
		if err != nil {
			return xerrors.Errorf("%s: %v", errMakeTable, err)
		}

		writeTable(w, matrixTable(e.Title, m))
	}

	return nil
}

func summaryTable(title string, summaries []results.Summary) table.Writer {
	t := newTable(title)
	t.AppendHeader(table.Row{"Network", "Count", "Min", "Max", "Mean", "StdDev", "Median"})

	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.Network,
			s.Count,
			formatDelay(s.Min),
			formatDelay(s.Max),
			formatDelay(s.Mean),
			formatDelay(s.StdDev),
			formatDelay(s.Median),
		})
	}

	return t
}

func matrixTable(title string, m *results.Matrix) table.Writer {
	t := newTable(title)

	header := table.Row{"Flow"}
	for _, column := range m.Columns() {
		header = append(header, column)
	}
	t.AppendHeader(header)

	if m.Empty() {
		return t
	}

	for r, flow := range m.Rows() {
		row := table.Row{flow}
		for c := range m.Columns() {
			row = append(row, formatDelay(m.At(r, c)))
		}

		t.AppendRow(row)
	}

	return t
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)

	return t
}

func writeTable(w io.Writer, t table.Writer) {
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
}

func formatDelay(value float64) string {
	if math.IsNaN(value) {
		return missingCell
	}

	return fmt.Sprintf("%.1f", value)
}
