package analysis

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"github.com/KaramelBytes/iris-explorer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_KnownValues(t *testing.T) {
	recs := [][]string{{"v", "g"}, {"4", "a"}, {"1", "a"}, {"", "b"}, {"3", "b"}, {"2", "b"}}
	tbl, err := dataset.FromRecords("t", "g", recs)
	require.NoError(t, err)

	stats, err := Describe(tbl)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	s := stats[0]
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.Q1, 1e-12)
	assert.InDelta(t, 2.5, s.Q2, 1e-12)
	assert.InDelta(t, 3.25, s.Q3, 1e-12)
	assert.Equal(t, 4.0, s.Max)
}

func TestDescribe_SkipsNumericLabel(t *testing.T) {
	stats, err := Describe(irisTable(t, testutil.IrisRecords()))
	require.NoError(t, err)
	require.Len(t, stats, 4)
	for _, s := range stats {
		assert.NotEqual(t, "target", s.Name)
	}
}

func TestDescribe_SingleValueHasNaNStd(t *testing.T) {
	tbl, err := dataset.FromRecords("t", "", [][]string{{"v"}, {"7.5"}})
	require.NoError(t, err)
	stats, err := Describe(tbl)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.True(t, math.IsNaN(stats[0].Std))
	assert.Equal(t, 7.5, stats[0].Q3)
}

func TestGroupMeans_MatchArithmeticMeans(t *testing.T) {
	recs := testutil.IrisRecords()
	tbl := irisTable(t, recs)

	gt, err := GroupMeans(tbl, "target")
	require.NoError(t, err)
	require.Len(t, gt.Groups, 3)
	assert.Equal(t, []string{"sepal length (cm)", "sepal width (cm)", "petal length (cm)", "petal width (cm)"}, gt.Columns)

	for gi, g := range gt.Groups {
		assert.Equal(t, strconv.Itoa(gi), g.Key)
		assert.Equal(t, 50, g.Size)
		for ci := range gt.Columns {
			var sum float64
			for _, r := range recs[1+gi*50 : 1+(gi+1)*50] {
				v, _ := strconv.ParseFloat(r[ci], 64)
				sum += v
			}
			assert.InDelta(t, sum/50, g.Means[ci], 1e-9, "group %s column %s", g.Key, gt.Columns[ci])
		}
	}

	m, ok := gt.Mean("2", petal)
	require.True(t, ok)
	assert.InDelta(t, gt.Groups[2].Means[2], m, 0)
	_, ok = gt.Mean("7", petal)
	assert.False(t, ok)
}

func TestGroupMeans_SkipsMissingCellsAndLabels(t *testing.T) {
	recs := [][]string{
		{"v", "species"},
		{"1", "b"},
		{"", "b"},
		{"3", "b"},
		{"10", "a"},
		{"99", ""},
	}
	tbl, err := dataset.FromRecords("t", "species", recs)
	require.NoError(t, err)

	gt, err := GroupMeans(tbl, "species")
	require.NoError(t, err)
	require.Len(t, gt.Groups, 2)
	assert.Equal(t, "a", gt.Groups[0].Key)
	assert.Equal(t, 10.0, gt.Groups[0].Means[0])
	assert.Equal(t, "b", gt.Groups[1].Key)
	assert.Equal(t, 3, gt.Groups[1].Size)
	assert.Equal(t, 2.0, gt.Groups[1].Means[0])
}

func TestGroupMeans_NumericKeysSortNumerically(t *testing.T) {
	recs := [][]string{{"v", "k"}, {"1", "10"}, {"2", "2"}, {"3", "1"}}
	tbl, err := dataset.FromRecords("t", "k", recs)
	require.NoError(t, err)
	gt, err := GroupMeans(tbl, "k")
	require.NoError(t, err)
	keys := []string{}
	for _, g := range gt.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"1", "2", "10"}, keys)
}

func TestGroupMeans_UnknownLabel(t *testing.T) {
	tbl := irisTable(t, testutil.IrisRecords())
	_, err := GroupMeans(tbl, "species")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrUnknownColumn))
}

func TestAnalyze_PrintsBothTablesWithoutMutating(t *testing.T) {
	tbl := irisTable(t, testutil.IrisRecords())
	before, _ := tbl.Floats(petal)

	var buf bytes.Buffer
	sum, err := Analyze(&buf, tbl, AnalyzeOptions{})
	require.NoError(t, err)
	assert.Len(t, sum.Stats, 4)
	assert.Len(t, sum.Groups.Groups, 3)

	out := buf.String()
	assert.Contains(t, out, "Basic Statistics:")
	assert.Contains(t, out, "Average measurements per species:")
	assert.Contains(t, out, "150.000000")
	assert.Contains(t, out, "75%")

	after, _ := tbl.Floats(petal)
	assert.Equal(t, before, after)
}

func TestQuantile(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, quantile(xs, 0))
	assert.Equal(t, 3.0, quantile(xs, 0.5))
	assert.Equal(t, 5.0, quantile(xs, 1))
	assert.InDelta(t, 2.0, quantile(xs, 0.25), 1e-12)
	assert.Zero(t, quantile(nil, 0.5))
}
