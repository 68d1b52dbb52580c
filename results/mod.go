package results

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-multierror/multierror"
	"golang.org/x/xerrors"
)

const (
	// Separator is the field delimiter of the analysis result files.
	Separator = ';'

	// ColumnFlow is the header of the flow name column.
	ColumnFlow = "flow_name"
	// ColumnCase is the header of the dataset case column.
	ColumnCase = "dataset_case"
	// ColumnNetwork is the header of the network configuration column.
	ColumnNetwork = "network"
	// ColumnType is the header of the analysis type column.
	ColumnType = "type"
	// ColumnDelay is the header of the worst-case delay column.
	ColumnDelay = "worst_case_delay"
	// ColumnMultiplexing is the header of the optional multiplexing column.
	ColumnMultiplexing = "multiplexing"
)

// Network configurations found in the result files.
const (
	Baseline = "Baseline"
	MA1      = "MA1"
	MA2      = "MA2"

	// Raw1000BaseTX is the name written by the analysis tool for MA1 when no
	// replacement is applied.
	Raw1000BaseTX = "1000BASE-TX"
	// Raw1000BaseT1S is the name written by the analysis tool for MA2 when no
	// replacement is applied.
	Raw1000BaseT1S = "1000BASE-T1S"
)

// Analysis types producing the delay bounds.
const (
	SFA      = "SFA_DELAY_BOUND"
	TFA      = "TFA_DELAY_BOUND"
	PMOO     = "PMOO_DELAY_BOUND"
	TMA      = "TMA_DELAY_BOUND"
	Deadline = "DEADLINE"
)

// RequiredColumns is the list of columns that must be present in the header.
var RequiredColumns = []string{ColumnFlow, ColumnCase, ColumnNetwork, ColumnType, ColumnDelay}

// Row is a single analysis result: the worst-case delay of a flow for a
// dataset case and a network, computed by one analysis method.
type Row struct {
	Flow         string
	Case         string
	Network      string
	Type         string
	Multiplexing string
	// Delay is expressed in microseconds. It is NaN when the analysis didn't
	// produce a bound.
	Delay float64
}

// Missing returns true when the row doesn't carry a delay value.
func (r Row) Missing() bool {
	return math.IsNaN(r.Delay)
}

// Table is an ordered list of rows. Operations on a table always return a new
// one and never modify the rows of the receiver.
type Table []Row

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t)
}

// Values returns the delays of the table in row order.
func (t Table) Values() []float64 {
	values := make([]float64, len(t))
	for i, row := range t {
		values[i] = row.Delay
	}

	return values
}

// LoadFile opens the file at the given path and loads the analysis results.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't open results file '%s': %v", path, err)
	}

	defer f.Close()

	table, err := Load(f)
	if err != nil {
		return nil, xerrors.Errorf("couldn't load results file '%s': %w", path, err)
	}

	return table, nil
}

// Load reads the semicolon-delimited results from the reader. The header row
// is required and the columns are looked up by name so that additional
// columns are tolerated.
func Load(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = Separator
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, xerrors.New("missing header row")
	}
	if err != nil {
		return nil, xerrors.Errorf("couldn't read header: %v", err)
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	table := Table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("couldn't read record: %v", err)
		}

		line, _ := reader.FieldPos(0)

		if isBlank(record) {
			continue
		}

		row, err := idx.parse(record)
		if err != nil {
			return nil, xerrors.Errorf("line %d: %w", line, err)
		}

		table = append(table, row)
	}

	return table, nil
}

type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}

	errs := make([]error, 0)
	for _, name := range RequiredColumns {
		if _, ok := idx[name]; !ok {
			errs = append(errs, xerrors.Errorf("missing column '%s'", name))
		}
	}

	if len(errs) > 0 {
		return nil, multierror.Of(errs...)
	}

	return idx, nil
}

func (idx columnIndex) field(record []string, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return "", false
	}

	return strings.TrimSpace(record[i]), true
}

func (idx columnIndex) parse(record []string) (Row, error) {
	values := make(map[string]string, len(RequiredColumns))
	for _, name := range RequiredColumns {
		value, ok := idx.field(record, name)
		if !ok {
			return Row{}, xerrors.Errorf("missing field '%s' (got %d fields)", name, len(record))
		}

		values[name] = value
	}

	delay, err := parseDelay(values[ColumnDelay])
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Flow:    values[ColumnFlow],
		Case:    values[ColumnCase],
		Network: values[ColumnNetwork],
		Type:    values[ColumnType],
		Delay:   delay,
	}

	row.Multiplexing, _ = idx.field(record, ColumnMultiplexing)

	return row, nil
}

// parseDelay converts the delay using a period as the decimal separator. An
// empty value means the bound is absent.
func parseDelay(value string) (float64, error) {
	if value == "" {
		return math.NaN(), nil
	}

	delay, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, xerrors.Errorf("invalid %s '%s'", ColumnDelay, value)
	}

	return delay, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}

	return true
}
