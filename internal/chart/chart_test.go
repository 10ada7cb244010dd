package chart

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"github.com/KaramelBytes/iris-explorer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

func irisTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.FromRecords("iris", "target", testutil.IrisRecords())
	require.NoError(t, err)
	return tbl
}

func TestVisualize_RendersThreeFiguresInOrder(t *testing.T) {
	rec := &Recorder{}
	require.NoError(t, Visualize(context.Background(), rec, irisTable(t), DefaultOptions()))

	require.Len(t, rec.Figures, 3)
	assert.Equal(t, "Average Petal Length Per Species", rec.Figures[0].Title)
	assert.Equal(t, "Distribution of Sepal Length", rec.Figures[1].Title)
	assert.Equal(t, "Sepal Length vs Petal Length", rec.Figures[2].Title)
	for _, f := range rec.Figures {
		assert.NotNil(t, f.Plot)
		assert.Equal(t, f.Title, f.Plot.Title.Text)
	}
}

func TestBarMeans_UnknownColumn(t *testing.T) {
	opt := DefaultOptions()
	opt.PetalLength = "petal length (mm)"
	_, err := BarMeans(irisTable(t), opt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrUnknownColumn))
}

func TestBarMeans_UnknownLabel(t *testing.T) {
	opt := DefaultOptions()
	opt.Label = "species"
	_, err := BarMeans(irisTable(t), opt)
	assert.True(t, errors.Is(err, dataset.ErrUnknownColumn))
}

func TestHistogram_UsesRequestedBins(t *testing.T) {
	tbl := irisTable(t)
	xs, err := tbl.Floats("sepal length (cm)")
	require.NoError(t, err)

	h, err := plotter.NewHist(plotter.Values(xs), 20)
	require.NoError(t, err)
	assert.Len(t, h.Bins, 20)

	fig, err := Histogram(tbl, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Sepal Length (cm)", fig.Plot.X.Label.Text)
}

func TestHistogram_AllMissing(t *testing.T) {
	tbl, err := dataset.FromRecords("t", "g", [][]string{{"sepal length (cm)", "g"}, {"1", "a"}})
	require.NoError(t, err)
	require.NoError(t, tbl.SetFloats("sepal length (cm)", []float64{math.NaN()}))
	_, err = Histogram(tbl, DefaultOptions())
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestDensityCurve_IntegratesToSampleCount(t *testing.T) {
	tbl := irisTable(t)
	xs, err := tbl.Floats("sepal length (cm)")
	require.NoError(t, err)

	const width = 0.1
	curve := densityCurve(xs, width)
	require.NotNil(t, curve)

	// Riemann sum over a range wide enough to hold nearly all the mass.
	var area float64
	const step = 0.005
	for x := 2.0; x < 10.0; x += step {
		area += curve(x) * step
	}
	assert.InDelta(t, float64(len(xs))*width, area, 0.5)
}

func TestDensityCurve_NoSpread(t *testing.T) {
	assert.Nil(t, densityCurve([]float64{5, 5, 5}, 0.1))
	assert.Nil(t, densityCurve([]float64{5}, 0.1))
	assert.Nil(t, densityCurve([]float64{1, 2, 3}, 0))
}

func TestPNGRenderer_WritesFiles(t *testing.T) {
	base := t.TempDir()
	r, err := NewPNGRenderer(base, true, nil)
	require.NoError(t, err)
	var opened []string
	r.Viewer = func(_ context.Context, path string) error {
		opened = append(opened, path)
		return errors.New("no display")
	}

	require.NoError(t, Visualize(context.Background(), r, irisTable(t), DefaultOptions()))
	require.Len(t, r.Paths, 3)
	assert.Equal(t, r.Paths, opened)
	assert.Equal(t, base, filepath.Dir(r.Dir))
	assert.Equal(t, "01-bar-petal-length.png", filepath.Base(r.Paths[0]))
	assert.Equal(t, "03-scatter-sepal-petal.png", filepath.Base(r.Paths[2]))

	for _, p := range r.Paths {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG", string(b[:4]), p)
	}
}

func TestPNGRenderer_CancelledContext(t *testing.T) {
	r, err := NewPNGRenderer(t.TempDir(), false, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Visualize(ctx, r, irisTable(t), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.Paths)
}
