package results

import (
	"fmt"
	"sort"
	"strings"
)

// Relabeler is a table of exact, whole-value substitutions. Values absent from
// the table are left unchanged.
type Relabeler map[string]string

// Label returns the substitution of the value, or the value itself when it is
// not mapped.
func (r Relabeler) Label(value string) string {
	if label, ok := r[value]; ok {
		return label
	}

	return value
}

// Apply returns a copy of the table where the values of the column have been
// substituted. Supported columns are the flow, the dataset case and the
// network ones.
func (r Relabeler) Apply(t Table, column string) Table {
	out := make(Table, len(t))
	for i, row := range t {
		switch column {
		case ColumnFlow:
			row.Flow = r.Label(row.Flow)
		case ColumnCase:
			row.Case = r.Label(row.Case)
		case ColumnNetwork:
			row.Network = r.Label(row.Network)
		case ColumnType:
			row.Type = r.Label(row.Type)
		}

		out[i] = row
	}

	return out
}

// CaseLabels creates the relabeler that maps the dataset cases of an
// experiment group to the ordinal of the case, dropping the network suffix.
// For instance with the group "1-", "1-2-MA1" becomes "2".
func CaseLabels(group string, cases int, networks ...string) Relabeler {
	r := make(Relabeler)
	for i := 1; i <= cases; i++ {
		label := fmt.Sprintf("%d", i)

		for _, network := range networks {
			r[fmt.Sprintf("%s%d-%s", group, i, network)] = label
		}
	}

	return r
}

// Substitution is the project-wide renaming applied to the results before
// any selection.
type Substitution struct {
	Networks Relabeler
	Flows    Relabeler
}

// DefaultSubstitution returns the renaming of the heatmaps: the physical
// layers take the name of the multi-access configurations and the last flows
// get a letter so that they are sorted after the single digit ones.
func DefaultSubstitution() Substitution {
	return Substitution{
		Networks: Relabeler{
			Raw1000BaseTX:  MA1,
			Raw1000BaseT1S: MA2,
		},
		Flows: Relabeler{
			"tt10": "ttA",
			"tt11": "ttB",
			"tt12": "ttC",
			"tt13": "ttD",
		},
	}
}

// Apply returns a copy of the table with the networks and the flows renamed.
// The network suffix of the dataset cases follows the renaming of the
// network.
func (s Substitution) Apply(t Table) Table {
	suffixes := sortedKeys(s.Networks)

	out := make(Table, len(t))
	for i, row := range t {
		row.Network = s.Networks.Label(row.Network)
		row.Flow = s.Flows.Label(row.Flow)

		for _, from := range suffixes {
			if strings.HasSuffix(row.Case, "-"+from) {
				row.Case = strings.TrimSuffix(row.Case, from) + s.Networks[from]
				break
			}
		}

		out[i] = row
	}

	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
