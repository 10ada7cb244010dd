package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/KaramelBytes/iris-explorer/internal/console"
	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// ExploreOptions controls the exploration printout.
type ExploreOptions struct {
	// HeadRows is the number of preview rows; 0 means 5.
	HeadRows int
}

// ColumnInfo describes one column of the schema summary.
type ColumnInfo struct {
	Name    string
	Type    string
	NonNull int
}

// TableInfo is the schema summary of a table.
type TableInfo struct {
	Rows    int
	Columns []ColumnInfo
}

// MissingCount is the number of missing cells in one column.
type MissingCount struct {
	Name    string
	Missing int
}

// FillResult reports what FillMissingMean changed.
type FillResult struct {
	// Means holds the pre-fill mean of every numeric column that was filled.
	Means map[string]float64
	// Filled counts replaced cells per column.
	Filled map[string]int
	// Skipped lists numeric columns with no observed value to average.
	Skipped []string
}

// Total returns the number of replaced cells.
func (r FillResult) Total() int {
	n := 0
	for _, c := range r.Filled {
		n += c
	}
	return n
}

// Info builds the schema summary.
func Info(t *dataset.Table) (TableInfo, error) {
	info := TableInfo{Rows: t.Rows()}
	types := t.Types()
	for i, name := range t.Names() {
		mask, err := t.Missing(name)
		if err != nil {
			return TableInfo{}, err
		}
		info.Columns = append(info.Columns, ColumnInfo{
			Name:    name,
			Type:    string(types[i]),
			NonNull: len(mask) - countTrue(mask),
		})
	}
	return info, nil
}

// MissingCounts returns per-column missing counts in table order.
func MissingCounts(t *dataset.Table) ([]MissingCount, error) {
	out := make([]MissingCount, 0, t.Cols())
	for _, name := range t.Names() {
		mask, err := t.Missing(name)
		if err != nil {
			return nil, err
		}
		out = append(out, MissingCount{Name: name, Missing: countTrue(mask)})
	}
	return out, nil
}

// FillMissingMean replaces missing numeric cells with their column mean.
// All means are computed before any cell is rewritten. Non-numeric columns
// are left untouched.
func FillMissingMean(t *dataset.Table) (FillResult, error) {
	res := FillResult{Means: map[string]float64{}, Filled: map[string]int{}}
	cols := t.NumericColumns()
	values := make(map[string][]float64, len(cols))

	for _, name := range cols {
		vals, err := t.Floats(name)
		if err != nil {
			return res, err
		}
		values[name] = vals
		obs := observed(vals)
		if len(obs) == len(vals) {
			continue
		}
		if len(obs) == 0 {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		res.Means[name] = stat.Mean(obs, nil)
	}

	for _, name := range cols {
		mean, ok := res.Means[name]
		if !ok {
			continue
		}
		vals := values[name]
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = mean
				res.Filled[name]++
			}
		}
		if err := t.SetFloats(name, vals); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Explore prints a preview, the schema and missing counts, then mean-fills
// the table in place.
func Explore(w io.Writer, t *dataset.Table, opt ExploreOptions) (FillResult, error) {
	n := opt.HeadRows
	if n <= 0 {
		n = 5
	}
	console.Section(w, "📌", "First Few Rows:")
	printHead(w, t, n)

	info, err := Info(t)
	if err != nil {
		return FillResult{}, err
	}
	console.Section(w, "📌", "Dataset Info:")
	printInfo(w, t, info)

	missing, err := MissingCounts(t)
	if err != nil {
		return FillResult{}, err
	}
	console.Section(w, "📌", "Missing Values:")
	rows := make([][]string, 0, len(missing))
	for _, m := range missing {
		rows = append(rows, []string{m.Name, strconv.Itoa(m.Missing)})
	}
	renderTable(w, []string{"Column", "Missing"}, rows)

	res, err := FillMissingMean(t)
	if err != nil {
		return res, fmt.Errorf("fill missing values: %w", err)
	}
	console.Success(w, "Missing values handled!")
	if len(res.Skipped) > 0 {
		console.Warn(w, fmt.Sprintf("no observed values to average in: %v", res.Skipped))
	}
	return res, nil
}

func printHead(w io.Writer, t *dataset.Table, n int) {
	head := t.HeadRecords(n)
	header := append([]string{""}, t.Names()...)
	rows := make([][]string, 0, len(head))
	for i, r := range head {
		rows = append(rows, append([]string{strconv.Itoa(i)}, r...))
	}
	renderTable(w, header, rows)
}

func printInfo(w io.Writer, t *dataset.Table, info TableInfo) {
	fmt.Fprintf(w, "Dataset: %s\n", t.Name)
	fmt.Fprintf(w, "RangeIndex: %d entries, 0 to %d\n", info.Rows, max(info.Rows-1, 0))
	fmt.Fprintf(w, "Data columns (total %d columns):\n", len(info.Columns))
	rows := make([][]string, 0, len(info.Columns))
	for i, c := range info.Columns {
		rows = append(rows, []string{strconv.Itoa(i), c.Name, fmt.Sprintf("%d non-null", c.NonNull), c.Type})
	}
	renderTable(w, []string{"#", "Column", "Non-Null Count", "Dtype"}, rows)
}

func observed(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func countTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}
	return n
}
