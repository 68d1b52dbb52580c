package results

import (
	"strings"
)

// Predicate returns true when the row must be kept.
type Predicate func(Row) bool

// AnalysisRules maps a network configuration to the only analysis type that
// is allowed to evaluate it. Networks absent from the rules are rejected.
type AnalysisRules map[string]string

var (
	// BarRules are the rules of the bar charts: the multi-access networks are
	// evaluated with SFA and the baseline with TFA.
	BarRules = AnalysisRules{
		MA1:      SFA,
		MA2:      SFA,
		Baseline: TFA,
	}

	// HeatmapRules are the rules of the heatmaps which only compare the
	// multi-access networks.
	HeatmapRules = AnalysisRules{
		MA1: SFA,
		MA2: SFA,
	}
)

// Networks returns the networks covered by the rules in lexical order.
func (rules AnalysisRules) Networks() []string {
	return sortedKeys(rules)
}

// Allows returns true when the row has been produced by the analysis type
// associated with its network.
func (rules AnalysisRules) Allows(row Row) bool {
	typ, ok := rules[row.Network]
	return ok && typ == row.Type
}

// ByFlow keeps the rows of the given flow.
func ByFlow(name string) Predicate {
	return func(row Row) bool {
		return row.Flow == name
	}
}

// ByGroup keeps the rows where the dataset case starts with the prefix of an
// experiment group, e.g. "1-".
func ByGroup(prefix string) Predicate {
	return func(row Row) bool {
		return strings.HasPrefix(row.Case, prefix)
	}
}

// ByNetwork keeps the rows of the network configuration.
func ByNetwork(name string) Predicate {
	return func(row Row) bool {
		return row.Network == name
	}
}

// ByType keeps the rows produced by the analysis type.
func ByType(typ string) Predicate {
	return func(row Row) bool {
		return row.Type == typ
	}
}

// ByAnalysis keeps the rows allowed by the rules, that is for each network of
// the rules, the rows of the network computed by the associated analysis.
func ByAnalysis(rules AnalysisRules) Predicate {
	preds := make([]Predicate, 0, len(rules))
	for _, network := range rules.Networks() {
		preds = append(preds, And(ByNetwork(network), ByType(rules[network])))
	}

	return Or(preds...)
}

// And keeps a row only if every predicate keeps it.
func And(preds ...Predicate) Predicate {
	return func(row Row) bool {
		for _, p := range preds {
			if !p(row) {
				return false
			}
		}

		return true
	}
}

// Or keeps a row if at least one predicate keeps it.
func Or(preds ...Predicate) Predicate {
	return func(row Row) bool {
		for _, p := range preds {
			if p(row) {
				return true
			}
		}

		return false
	}
}

// Select returns a new table with the rows accepted by the predicate. An
// empty table is a valid result.
func (t Table) Select(p Predicate) Table {
	selected := Table{}
	for _, row := range t {
		if p(row) {
			selected = append(selected, row)
		}
	}

	return selected
}

// Selection describes the rows of an experiment group.
type Selection struct {
	// Flow restricts the selection to a single flow when not empty.
	Flow string
	// Group is the dataset case prefix of the experiment group.
	Group string
	Rules AnalysisRules
}

// Predicate returns the predicate combining the criteria of the selection.
func (s Selection) Predicate() Predicate {
	preds := []Predicate{ByGroup(s.Group), ByAnalysis(s.Rules)}
	if s.Flow != "" {
		preds = append(preds, ByFlow(s.Flow))
	}

	return And(preds...)
}

// Apply returns the rows of the table that belong to the selection.
func (s Selection) Apply(t Table) Table {
	return t.Select(s.Predicate())
}
