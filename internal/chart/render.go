package chart

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"github.com/KaramelBytes/iris-explorer/internal/utils"
	"github.com/google/uuid"
)

// Renderer displays a finished figure.
type Renderer interface {
	Render(ctx context.Context, fig Figure) error
}

// Viewer hands a rendered file to something that shows it.
type Viewer func(ctx context.Context, path string) error

// Recorder keeps figures in memory. Useful for headless runs and tests.
type Recorder struct {
	Figures []Figure
}

func (r *Recorder) Render(_ context.Context, fig Figure) error {
	r.Figures = append(r.Figures, fig)
	return nil
}

// PNGRenderer writes each figure as a PNG into a per-run directory and
// optionally opens it with a viewer.
type PNGRenderer struct {
	Dir    string
	Open   bool
	Viewer Viewer
	Logger *slog.Logger
	// Paths lists written files in render order.
	Paths []string
}

// NewPNGRenderer creates <baseDir>/<run id>/ for this run's figures.
func NewPNGRenderer(baseDir string, open bool, logger *slog.Logger) (*PNGRenderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Join(baseDir, uuid.NewString())
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &PNGRenderer{Dir: dir, Open: open, Viewer: SystemViewer, Logger: logger}, nil
}

func (r *PNGRenderer) Render(ctx context.Context, fig Figure) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wt, err := fig.Plot.WriterTo(fig.Width, fig.Height, "png")
	if err != nil {
		return fmt.Errorf("render %s: %w", fig.Slug, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("render %s: %w", fig.Slug, err)
	}
	path := filepath.Join(r.Dir, fmt.Sprintf("%02d-%s.png", len(r.Paths)+1, fig.Slug))
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", fig.Slug, err)
	}
	r.Paths = append(r.Paths, path)
	r.Logger.Debug("figure written", "title", fig.Title, "path", path)

	if r.Open && r.Viewer != nil {
		// A missing desktop viewer is not fatal; the file is still on disk.
		if err := r.Viewer(ctx, path); err != nil {
			r.Logger.Warn("could not open figure", "path", path, "error", err)
		}
	}
	return nil
}

// SystemViewer opens path with the platform's default image viewer.
func SystemViewer(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	return cmd.Run()
}

// Visualize builds the bar, histogram and scatter figures and renders them
// in that order.
func Visualize(ctx context.Context, r Renderer, t *dataset.Table, opt Options) error {
	builders := []func(*dataset.Table, Options) (Figure, error){BarMeans, Histogram, Scatter}
	for _, build := range builders {
		fig, err := build(t, opt)
		if err != nil {
			return err
		}
		if err := r.Render(ctx, fig); err != nil {
			return err
		}
	}
	return nil
}
