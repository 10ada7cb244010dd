package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats is the descriptive summary of one numeric column.
// Missing cells are ignored; Count is the number of observed values.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q1    float64
	Q2    float64
	Q3    float64
	Max   float64
}

// Describe summarizes every numeric column in table order.
func Describe(t *dataset.Table) ([]ColumnStats, error) {
	cols := t.NumericColumns()
	out := make([]ColumnStats, 0, len(cols))
	for _, name := range cols {
		vals, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(name, observed(vals)))
	}
	return out, nil
}

func summarize(name string, xs []float64) ColumnStats {
	s := ColumnStats{Name: name, Count: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Q2, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.NaN()
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q1 = quantile(sorted, 0.25)
	s.Q2 = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks at q*(n-1).
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
