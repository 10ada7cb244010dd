package dataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrUnknownColumn is returned when a column name is not part of the table.
var ErrUnknownColumn = errors.New("unknown column")

// MissingTokens are the cell values read as missing. Matching is exact and
// case-sensitive, so "na" or "none" stay text.
var MissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Table is an in-memory labelled dataset. Rows keep their file order.
type Table struct {
	Name  string
	Label string
	df    dataframe.DataFrame
}

// FromRecords builds a Table from a header row followed by data rows.
// The label column, when present, is always typed as a string column.
func FromRecords(name, label string, records [][]string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmpty
	}
	opts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
	}
	if label != "" {
		opts = append(opts, dataframe.WithTypes(map[string]series.Type{label: series.String}))
	}
	df := dataframe.LoadRecords(records, opts...)
	if df.Err != nil {
		return nil, fmt.Errorf("build table: %w", df.Err)
	}
	return &Table{Name: name, Label: label, df: df}, nil
}

// Frame exposes the underlying dataframe.
func (t *Table) Frame() dataframe.DataFrame { return t.df }

func (t *Table) Rows() int { return t.df.Nrow() }

func (t *Table) Cols() int { return t.df.Ncol() }

func (t *Table) Names() []string { return t.df.Names() }

func (t *Table) Types() []series.Type { return t.df.Types() }

// Has reports whether the table carries a column with the given name.
func (t *Table) Has(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Column returns the named column.
func (t *Table) Column(name string) (series.Series, error) {
	if !t.Has(name) {
		return series.Series{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return t.df.Col(name), nil
}

// IsNumeric reports whether the named column holds measurements.
// The label column never counts as numeric.
func (t *Table) IsNumeric(name string) bool {
	if name == t.Label || !t.Has(name) {
		return false
	}
	switch t.df.Col(name).Type() {
	case series.Float, series.Int:
		return true
	}
	return false
}

// NumericColumns lists measurement columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, n := range t.df.Names() {
		if t.IsNumeric(n) {
			out = append(out, n)
		}
	}
	return out
}

// Floats returns the values of a numeric column; missing cells are NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !t.IsNumeric(name) {
		return nil, fmt.Errorf("column %q is %s, not numeric", name, s.Type())
	}
	return s.Float(), nil
}

// Missing returns a per-row mask of missing cells for the named column.
func (t *Table) Missing(name string) ([]bool, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	mask := make([]bool, s.Len())
	if t.IsNumeric(name) {
		for i, v := range s.Float() {
			mask[i] = math.IsNaN(v)
		}
		return mask, nil
	}
	for i := range mask {
		mask[i] = s.Elem(i).IsNA()
	}
	return mask, nil
}

// SetFloats replaces a numeric column in place with the given values.
func (t *Table) SetFloats(name string, vals []float64) error {
	if !t.IsNumeric(name) {
		return fmt.Errorf("set %q: %w", name, ErrUnknownColumn)
	}
	if len(vals) != t.df.Nrow() {
		return fmt.Errorf("set %q: got %d values for %d rows", name, len(vals), t.df.Nrow())
	}
	df := t.df.Mutate(series.New(vals, series.Float, name))
	if df.Err != nil {
		return fmt.Errorf("set %q: %w", name, df.Err)
	}
	t.df = df
	return nil
}

// Strings returns the textual cells of a column with missing cells as "".
func (t *Table) Strings(name string) ([]string, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	mask, _ := t.Missing(name)
	out := s.Records()
	for i := range out {
		if mask[i] {
			out[i] = ""
		}
	}
	return out, nil
}

// HeadRecords returns up to n data rows as strings, without the header.
func (t *Table) HeadRecords(n int) [][]string {
	rows := t.df.Nrow()
	if n > rows {
		n = rows
	}
	if n <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	recs := t.df.Subset(idx).Records()
	return recs[1:]
}
