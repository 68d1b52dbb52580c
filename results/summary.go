package results

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of the worst-case delays of a network.
type Summary struct {
	Network string
	Count   int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	Median  float64
}

// Summarize returns the summary of each network of the table in lexical
// order. Rows without a delay are ignored, and a network without any value
// is reported with a zero count and NaN statistics.
func Summarize(t Table) []Summary {
	networks := t.Distinct(ColumnNetwork)
	summaries := make([]Summary, len(networks))

	for i, network := range networks {
		values := make([]float64, 0)
		for _, row := range t.Select(ByNetwork(network)) {
			if !row.Missing() {
				values = append(values, row.Delay)
			}
		}

		summaries[i] = summarize(network, values)
	}

	return summaries
}

func summarize(network string, values []float64) Summary {
	s := Summary{
		Network: network,
		Count:   len(values),
		Min:     math.NaN(),
		Max:     math.NaN(),
		Mean:    math.NaN(),
		StdDev:  math.NaN(),
		Median:  math.NaN(),
	}

	if len(values) == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Mean = stat.Mean(values, nil)

	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	} else {
		s.StdDev = 0
	}

	median, err := stats.Median(values)
	if err == nil {
		s.Median = median
	}

	return s
}
