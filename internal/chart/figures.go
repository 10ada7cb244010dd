package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/iris-explorer/internal/analysis"
	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when a figure has nothing to draw.
var ErrNoData = errors.New("no data to plot")

var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

// Figure is a finished plot waiting for a Renderer.
type Figure struct {
	Slug   string
	Title  string
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length
}

// Options names the columns the figures are drawn from.
type Options struct {
	Label       string
	PetalLength string
	SepalLength string
	Bins        int
	PetalAxis   string
	SepalAxis   string
}

// DefaultOptions matches the iris export column names.
func DefaultOptions() Options {
	return Options{
		Label:       "target",
		PetalLength: "petal length (cm)",
		SepalLength: "sepal length (cm)",
		Bins:        20,
		PetalAxis:   "Petal Length (cm)",
		SepalAxis:   "Sepal Length (cm)",
	}
}

func newFigure(slug, title string) Figure {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	return Figure{Slug: slug, Title: title, Plot: p, Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

// BarMeans draws the mean petal length of every group.
func BarMeans(t *dataset.Table, opt Options) (Figure, error) {
	if !t.IsNumeric(opt.PetalLength) {
		return Figure{}, fmt.Errorf("bar chart: %w: %q", dataset.ErrUnknownColumn, opt.PetalLength)
	}
	gt, err := analysis.GroupMeans(t, opt.Label)
	if err != nil {
		return Figure{}, fmt.Errorf("bar chart: %w", err)
	}
	if len(gt.Groups) == 0 {
		return Figure{}, fmt.Errorf("bar chart: %w", ErrNoData)
	}
	values := make(plotter.Values, 0, len(gt.Groups))
	names := make([]string, 0, len(gt.Groups))
	for _, g := range gt.Groups {
		m, _ := gt.Mean(g.Key, opt.PetalLength)
		if math.IsNaN(m) {
			m = 0
		}
		values = append(values, m)
		names = append(names, g.Key)
	}

	fig := newFigure("bar-petal-length", "Average Petal Length Per Species")
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return Figure{}, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = skyBlue
	bars.LineStyle.Width = vg.Length(0)
	fig.Plot.Add(bars)
	fig.Plot.NominalX(names...)
	fig.Plot.X.Label.Text = opt.Label
	fig.Plot.Y.Label.Text = opt.PetalAxis
	fig.Plot.Y.Min = 0
	return fig, nil
}

// Histogram draws the sepal length distribution with a density curve
// scaled to bin counts.
func Histogram(t *dataset.Table, opt Options) (Figure, error) {
	vals, err := t.Floats(opt.SepalLength)
	if err != nil {
		return Figure{}, fmt.Errorf("histogram: %w", err)
	}
	xs := finite(vals)
	if len(xs) == 0 {
		return Figure{}, fmt.Errorf("histogram: %w", ErrNoData)
	}
	bins := opt.Bins
	if bins <= 0 {
		bins = 20
	}
	h, err := plotter.NewHist(plotter.Values(xs), bins)
	if err != nil {
		return Figure{}, fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = skyBlue

	fig := newFigure("hist-sepal-length", "Distribution of Sepal Length")
	fig.Plot.Add(h)
	if curve := densityCurve(xs, binWidth(h)); curve != nil {
		fn := plotter.NewFunction(curve)
		fn.XMin, fn.XMax = h.Bins[0].Min, h.Bins[len(h.Bins)-1].Max
		fn.Samples = 200
		fn.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
		fn.Width = vg.Points(2)
		fig.Plot.Add(fn)
	}
	fig.Plot.X.Label.Text = opt.SepalAxis
	fig.Plot.Y.Label.Text = "Count"
	return fig, nil
}

// Scatter plots sepal length against petal length, one series per group.
func Scatter(t *dataset.Table, opt Options) (Figure, error) {
	xs, err := t.Floats(opt.SepalLength)
	if err != nil {
		return Figure{}, fmt.Errorf("scatter: %w", err)
	}
	ys, err := t.Floats(opt.PetalLength)
	if err != nil {
		return Figure{}, fmt.Errorf("scatter: %w", err)
	}
	keys, parts, err := analysis.Partition(t, opt.Label)
	if err != nil {
		return Figure{}, fmt.Errorf("scatter: %w", err)
	}

	fig := newFigure("scatter-sepal-petal", "Sepal Length vs Petal Length")
	drawn := 0
	for i, k := range keys {
		pts := make(plotter.XYs, 0, len(parts[k]))
		for _, r := range parts[k] {
			if math.IsNaN(xs[r]) || math.IsNaN(ys[r]) {
				continue
			}
			pts = append(pts, plotter.XY{X: xs[r], Y: ys[r]})
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return Figure{}, fmt.Errorf("scatter %s: %w", k, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		fig.Plot.Add(s)
		fig.Plot.Legend.Add(k, s)
		drawn += len(pts)
	}
	if drawn == 0 {
		return Figure{}, fmt.Errorf("scatter: %w", ErrNoData)
	}
	fig.Plot.Legend.Top = true
	fig.Plot.Legend.Left = true
	fig.Plot.X.Label.Text = opt.SepalAxis
	fig.Plot.Y.Label.Text = opt.PetalAxis
	fig.Plot.Add(plotter.NewGrid())
	return fig, nil
}

// densityCurve returns a Gaussian KDE (Scott bandwidth) scaled so its area
// matches a histogram of len(xs) values with the given bin width.
// It returns nil when the sample has no spread.
func densityCurve(xs []float64, width float64) func(float64) float64 {
	if len(xs) < 2 || width <= 0 {
		return nil
	}
	sample := stats.Sample{Xs: xs}
	bw := stats.BandwidthScott(sample)
	if bw <= 0 || math.IsNaN(bw) || math.IsInf(bw, 0) {
		return nil
	}
	kde := &stats.KDE{Sample: sample, Bandwidth: bw}
	scale := float64(len(xs)) * width
	return func(x float64) float64 { return kde.PDF(x) * scale }
}

func binWidth(h *plotter.Histogram) float64 {
	if len(h.Bins) == 0 {
		return 0
	}
	return h.Bins[0].Max - h.Bins[0].Min
}

func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
