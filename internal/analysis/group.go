package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// GroupRow holds the column means of one label value.
type GroupRow struct {
	Key   string
	Size  int
	Means []float64 // aligned with GroupTable.Columns
}

// GroupTable is the per-group mean of every numeric column.
type GroupTable struct {
	Label   string
	Columns []string
	Groups  []GroupRow
}

// Mean returns the mean of column for group key.
func (g *GroupTable) Mean(key, column string) (float64, bool) {
	ci := -1
	for i, c := range g.Columns {
		if c == column {
			ci = i
			break
		}
	}
	if ci < 0 {
		return 0, false
	}
	for _, r := range g.Groups {
		if r.Key == key {
			return r.Means[ci], true
		}
	}
	return 0, false
}

// Partition splits row indexes by label value. Indexes keep table order
// within each group; rows with a missing label are dropped.
func Partition(t *dataset.Table, label string) (keys []string, rows map[string][]int, err error) {
	labels, err := t.Strings(label)
	if err != nil {
		return nil, nil, err
	}
	rows = map[string][]int{}
	for i, v := range labels {
		if v == "" {
			continue
		}
		if _, ok := rows[v]; !ok {
			keys = append(keys, v)
		}
		rows[v] = append(rows[v], i)
	}
	sortKeys(keys)
	return keys, rows, nil
}

// GroupMeans partitions rows by the label column and averages each numeric
// column within every partition. Missing cells are skipped; a group with no
// observed value for a column gets NaN.
func GroupMeans(t *dataset.Table, label string) (*GroupTable, error) {
	keys, parts, err := Partition(t, label)
	if err != nil {
		return nil, err
	}
	cols := numericExcept(t, label)
	values := make([][]float64, len(cols))
	for i, c := range cols {
		if values[i], err = t.Floats(c); err != nil {
			return nil, err
		}
	}
	gt := &GroupTable{Label: label, Columns: cols}
	for _, k := range keys {
		idx := parts[k]
		row := GroupRow{Key: k, Size: len(idx), Means: make([]float64, len(cols))}
		obs := make([]float64, 0, len(idx))
		for ci := range cols {
			obs = obs[:0]
			for _, r := range idx {
				if v := values[ci][r]; !math.IsNaN(v) {
					obs = append(obs, v)
				}
			}
			row.Means[ci] = math.NaN()
			if len(obs) > 0 {
				row.Means[ci] = stat.Mean(obs, nil)
			}
		}
		gt.Groups = append(gt.Groups, row)
	}
	return gt, nil
}

func numericExcept(t *dataset.Table, label string) []string {
	var out []string
	for _, c := range t.NumericColumns() {
		if c != label {
			out = append(out, c)
		}
	}
	return out
}

// sortKeys orders numerically when every key parses as a number, else lexically.
func sortKeys(keys []string) {
	nums := make(map[string]float64, len(keys))
	for _, k := range keys {
		f, err := strconv.ParseFloat(k, 64)
		if err != nil {
			sort.Strings(keys)
			return
		}
		nums[k] = f
	}
	sort.SliceStable(keys, func(i, j int) bool { return nums[keys[i]] < nums[keys[j]] })
}
