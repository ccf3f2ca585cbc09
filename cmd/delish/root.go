package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/config"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/dataset"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/logging"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/source"
)

// options holds the global flags shared by every subcommand.
type options struct {
	data     string
	sheet    string
	logLevel string
	cutoff   string
	traffic  []string
	output   string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "delish",
		Short: "Clean and summarize the Delish Express delivery dataset",
		Long: `delish reads the raw delivery dataset (CSV, XLSX or a PostgreSQL table),
cleans it and prints the same aggregations the dashboard serves.

Settings default to the server's environment variables (DATASET_PATH,
FILTER_CUTOFF, FILTER_TRAFFIC, ...). Flags override them for one run.

Examples:
  delish clean --data data/train.csv -o clean.csv
  delish report drivers --cutoff 2022-03-01 --traffic Jam,High
  delish export delivery-time-by-city --format xlsx -o times.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logs go to stderr so stdout stays machine-readable
			logging.SetupWriter(cmd.ErrOrStderr(), opts.logLevel, "text")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.data, "data", "", "dataset file (.csv or .xlsx); overrides DATASET_PATH and any database URL")
	flags.StringVar(&opts.sheet, "sheet", "", "worksheet to read from an .xlsx file (default: first sheet)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&opts.cutoff, "cutoff", "", "keep orders before this YYYY-MM-DD date; empty disables (default: FILTER_CUTOFF)")
	flags.StringSliceVar(&opts.traffic, "traffic", nil, "traffic densities to keep (default: FILTER_TRAFFIC)")
	flags.StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	flags.DurationVar(&opts.timeout, "timeout", 0, "maximum time to load the dataset (default: DATASET_LOAD_TIMEOUT)")

	root.AddCommand(newCleanCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newTablesCmd())

	return root
}

// loadConfig reads the environment configuration and applies flag overrides.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if o.data != "" {
		cfg.Dataset.Path = o.data
		cfg.Database.URL = ""
	}
	if o.sheet != "" {
		cfg.Dataset.Sheet = o.sheet
	}
	if o.timeout > 0 {
		cfg.Dataset.LoadTimeout = o.timeout
	}
	if cmd.Flags().Changed("cutoff") {
		cfg.Filter.Cutoff = o.cutoff
	}
	if cmd.Flags().Changed("traffic") {
		cfg.Filter.Traffic = o.traffic
		if cfg.Filter.Traffic == nil {
			cfg.Filter.Traffic = []string{}
		}
	}

	return cfg, nil
}

// load cleans the configured dataset once.
func (o *options) load(cmd *cobra.Command) (*config.Config, *dataset.Snapshot, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src, closeSource, err := source.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer closeSource()

	snap, err := dataset.NewStore(src, cfg.Dataset.LoadTimeout).Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return cfg, snap, nil
}

// filter builds the record filter from the effective configuration.
func filter(cfg *config.Config) (core.Filter, error) {
	cutoff, err := cfg.Filter.CutoffDate()
	if err != nil {
		return core.Filter{}, fmt.Errorf("invalid cutoff %q: want YYYY-MM-DD", cfg.Filter.Cutoff)
	}
	if err := core.ValidateTraffic(cfg.Filter.Traffic); err != nil {
		return core.Filter{}, err
	}
	return core.Filter{Cutoff: cutoff, Traffic: cfg.Filter.Traffic}, nil
}

// withOutput runs write against stdout or the --output file.
func (o *options) withOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	if o.output == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(o.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
