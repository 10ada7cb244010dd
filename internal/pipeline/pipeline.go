// Package pipeline drives the load, explore, analyze and visualize stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/KaramelBytes/iris-explorer/internal/analysis"
	"github.com/KaramelBytes/iris-explorer/internal/chart"
	"github.com/KaramelBytes/iris-explorer/internal/console"
	"github.com/KaramelBytes/iris-explorer/internal/dataset"
)

// Stages are the functions Run calls, in order. Tests replace them to
// observe which stages ran.
type Stages struct {
	Load      func(path string, opt dataset.LoadOptions) (*dataset.Table, error)
	Explore   func(w io.Writer, t *dataset.Table, opt analysis.ExploreOptions) (analysis.FillResult, error)
	Analyze   func(w io.Writer, t *dataset.Table, opt analysis.AnalyzeOptions) (analysis.Summary, error)
	Visualize func(ctx context.Context, r chart.Renderer, t *dataset.Table, opt chart.Options) error
}

// DefaultStages wires the real implementations.
func DefaultStages() Stages {
	return Stages{
		Load:      dataset.Load,
		Explore:   analysis.Explore,
		Analyze:   analysis.Analyze,
		Visualize: chart.Visualize,
	}
}

// Options configures one run.
type Options struct {
	Path     string
	Load     dataset.LoadOptions
	Explore  analysis.ExploreOptions
	Analyze  analysis.AnalyzeOptions
	Chart    chart.Options
	Renderer chart.Renderer
	Out      io.Writer
	Logger   *slog.Logger
	// Stages overrides DefaultStages when set.
	Stages *Stages
}

// Run executes the pipeline. A dataset that cannot be loaded is reported on
// Out and ends the run without error; failures in later stages are returned.
func Run(ctx context.Context, opt Options) error {
	st := DefaultStages()
	if opt.Stages != nil {
		st = *opt.Stages
	}
	out := opt.Out
	if out == nil {
		out = io.Discard
	}
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := loadDataset(out, log, st, opt)
	if t == nil {
		return nil
	}

	log.Debug("stage start", "stage", "explore")
	fill, err := st.Explore(out, t, opt.Explore)
	if err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	log.Debug("stage done", "stage", "explore", "filled", fill.Total())

	log.Debug("stage start", "stage", "analyze")
	if _, err := st.Analyze(out, t, opt.Analyze); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if opt.Renderer == nil {
		log.Debug("no renderer configured; skipping charts")
		return nil
	}
	log.Debug("stage start", "stage", "visualize")
	if err := st.Visualize(ctx, opt.Renderer, t, opt.Chart); err != nil {
		return fmt.Errorf("visualize: %w", err)
	}
	return nil
}

func loadDataset(out io.Writer, log *slog.Logger, st Stages, opt Options) *dataset.Table {
	t, err := st.Load(opt.Path, opt.Load)
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		console.Failure(out, "Error: File not found. Please check the file path.")
		log.Debug("dataset missing", "path", opt.Path)
		return nil
	case err != nil:
		console.Failure(out, fmt.Sprintf("Error loading file: %v", err))
		return nil
	case t == nil:
		return nil
	}
	name := opt.Load.Name
	if name == "" {
		name = t.Name
	}
	console.Success(out, fmt.Sprintf("%s Dataset Loaded Successfully!", name))
	log.Debug("dataset loaded", "path", opt.Path, "rows", t.Rows(), "cols", t.Cols())
	return t
}
