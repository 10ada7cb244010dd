// Package testutil holds dataset fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// IrisHeader mirrors the column names of the scikit-learn iris export.
var IrisHeader = []string{"sepal length (cm)", "sepal width (cm)", "petal length (cm)", "petal width (cm)", "target"}

// IrisRecords returns a header plus 150 deterministic rows, 50 for each of
// the labels 0, 1 and 2.
func IrisRecords() [][]string {
	out := [][]string{append([]string(nil), IrisHeader...)}
	for i := 0; i < 150; i++ {
		g := i / 50
		k := i % 10
		row := []float64{
			5.0 + float64(g)*0.8 + float64(k)*0.1,
			3.4 - float64(g)*0.3 + float64(k%5)*0.05,
			1.4 + float64(g)*2.5 + float64(k)*0.05,
			0.2 + float64(g)*0.9 + float64(k%3)*0.1,
		}
		rec := make([]string, 0, len(row)+1)
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'f', 2, 64))
		}
		rec = append(rec, strconv.Itoa(g))
		out = append(out, rec)
	}
	return out
}

// Blank returns a copy of records with the given data rows (0-based, header
// excluded) emptied in column col.
func Blank(records [][]string, col int, rows ...int) [][]string {
	out := make([][]string, len(records))
	for i, r := range records {
		out[i] = append([]string(nil), r...)
	}
	for _, r := range rows {
		out[r+1][col] = ""
	}
	return out
}

// WriteCSV writes records as a comma separated file under dir.
func WriteCSV(t testing.TB, dir, name string, records [][]string) string {
	t.Helper()
	var b strings.Builder
	for _, r := range records {
		b.WriteString(strings.Join(quoteAll(r), ","))
		b.WriteString("\n")
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func quoteAll(r []string) []string {
	out := make([]string, len(r))
	for i, v := range r {
		if strings.ContainsAny(v, ",\"") {
			v = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		out[i] = v
	}
	return out
}

// ParseColumn returns the numeric values of column col, skipping blanks.
func ParseColumn(records [][]string, col int) []float64 {
	var out []float64
	for _, r := range records[1:] {
		if r[col] == "" {
			continue
		}
		v, err := strconv.ParseFloat(r[col], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
