package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/KaramelBytes/iris-explorer/internal/console"
	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"github.com/olekukonko/tablewriter"
)

// AnalyzeOptions controls the analysis printout.
type AnalyzeOptions struct {
	// Label is the grouping column; empty uses the table label.
	Label string
}

// Summary is what Analyze computed, returned for callers and tests.
type Summary struct {
	Stats  []ColumnStats
	Groups *GroupTable
}

// Analyze prints descriptive statistics and per-group means. It does not
// modify the table.
func Analyze(w io.Writer, t *dataset.Table, opt AnalyzeOptions) (Summary, error) {
	label := opt.Label
	if label == "" {
		label = t.Label
	}
	stats, err := Describe(t)
	if err != nil {
		return Summary{}, fmt.Errorf("describe: %w", err)
	}
	console.Section(w, "📊", "Basic Statistics:")
	printDescribe(w, stats)

	groups, err := GroupMeans(t, label)
	if err != nil {
		return Summary{Stats: stats}, fmt.Errorf("group by %q: %w", label, err)
	}
	console.Section(w, "📊", "Average measurements per species:")
	printGroups(w, groups)
	return Summary{Stats: stats, Groups: groups}, nil
}

func printDescribe(w io.Writer, stats []ColumnStats) {
	header := []string{""}
	for _, s := range stats {
		header = append(header, s.Name)
	}
	type metric struct {
		name string
		get  func(ColumnStats) float64
	}
	metrics := []metric{
		{"count", func(s ColumnStats) float64 { return float64(s.Count) }},
		{"mean", func(s ColumnStats) float64 { return s.Mean }},
		{"std", func(s ColumnStats) float64 { return s.Std }},
		{"min", func(s ColumnStats) float64 { return s.Min }},
		{"25%", func(s ColumnStats) float64 { return s.Q1 }},
		{"50%", func(s ColumnStats) float64 { return s.Q2 }},
		{"75%", func(s ColumnStats) float64 { return s.Q3 }},
		{"max", func(s ColumnStats) float64 { return s.Max }},
	}
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		row := []string{m.name}
		for _, s := range stats {
			row = append(row, formatFloat(m.get(s)))
		}
		rows = append(rows, row)
	}
	renderTable(w, header, rows)
}

func printGroups(w io.Writer, g *GroupTable) {
	header := append([]string{g.Label}, g.Columns...)
	rows := make([][]string, 0, len(g.Groups))
	for _, gr := range g.Groups {
		row := []string{gr.Key}
		for _, m := range gr.Means {
			row = append(row, formatFloat(m))
		}
		rows = append(rows, row)
	}
	renderTable(w, header, rows)
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
