package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/KaramelBytes/iris-explorer/internal/analysis"
	"github.com/KaramelBytes/iris-explorer/internal/chart"
	cfgpkg "github.com/KaramelBytes/iris-explorer/internal/config"
	"github.com/KaramelBytes/iris-explorer/internal/console"
	"github.com/KaramelBytes/iris-explorer/internal/dataset"
	"github.com/KaramelBytes/iris-explorer/internal/logging"
	"github.com/KaramelBytes/iris-explorer/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Dataset flags (override config if set)
	flagFile       string
	flagLabel      string
	flagDelimiter  string
	flagSheetName  string
	flagSheetIndex int
	flagNoCharts   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "iris-explorer",
	Short: "Load the iris dataset, print summary statistics and draw charts",
	Long: `iris-explorer reads iris_dataset.csv from the working directory, prints a preview,
the schema and missing-value counts, fills missing measurements with column means,
prints descriptive statistics and per-species means, and draws three charts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPipeline,
}

// Execute is the entry point called by main.main()
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.iris-explorer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "dataset to load (default iris_dataset.csv)")
	rootCmd.Flags().StringVar(&flagLabel, "label", "", "column holding the species label (default target)")
	rootCmd.Flags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	rootCmd.Flags().StringVar(&flagSheetName, "sheet-name", "", "XLSX: sheet name to load")
	rootCmd.Flags().IntVar(&flagSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	rootCmd.Flags().BoolVar(&flagNoCharts, "no-charts", false, "skip chart rendering")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		if c, err = cfgpkg.Load(""); err != nil {
			return
		}
	}
	cfg = c

	f := rootCmd.Flags()
	if f.Changed("file") && flagFile != "" {
		cfg.DataPath = flagFile
	}
	if f.Changed("label") && flagLabel != "" {
		cfg.LabelColumn = flagLabel
	}
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	if f.Changed("sheet-index") && flagSheetIndex > 0 {
		cfg.SheetIndex = flagSheetIndex
	}
	if rootCmd.PersistentFlags().Changed("debug") {
		cfg.Debug = debug
	}
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		return errors.New("no configuration loaded")
	}
	delim, err := parseDelimiter(flagDelimiter)
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Debug)
	out := cmd.OutOrStdout()

	var png *chart.PNGRenderer
	var renderer chart.Renderer
	if !flagNoCharts {
		png, err = chart.NewPNGRenderer(cfg.OutputDir, cfg.OpenCharts, logger)
		if err != nil {
			return err
		}
		renderer = png
	}

	chartOpt := chart.DefaultOptions()
	chartOpt.Label = cfg.LabelColumn
	chartOpt.PetalLength = cfg.PetalLengthColumn
	chartOpt.SepalLength = cfg.SepalLengthColumn
	chartOpt.Bins = cfg.HistBins

	err = pipeline.Run(cmd.Context(), pipeline.Options{
		Path: cfg.DataPath,
		Load: dataset.LoadOptions{
			Name:       cfg.DatasetName,
			Label:      cfg.LabelColumn,
			Delimiter:  delim,
			SheetName:  cfg.SheetName,
			SheetIndex: cfg.SheetIndex,
		},
		Explore:  analysis.ExploreOptions{HeadRows: cfg.HeadRows},
		Analyze:  analysis.AnalyzeOptions{Label: cfg.LabelColumn},
		Chart:    chartOpt,
		Renderer: renderer,
		Out:      out,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if png != nil && len(png.Paths) > 0 {
		console.Infof(out, "\n✓ Charts written to %s", png.Dir)
	}
	return nil
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}
