package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/export"
)

func newCleanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Write the cleaned records as CSV",
		Long: `Cleans the raw dataset and writes every canonical record as CSV, with
dates as YYYY-MM-DD and the derived day-of-month and ISO week columns.
The cutoff and traffic filters are not applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, snap, err := opts.load(cmd)
			if err != nil {
				return err
			}

			slog.Info("dataset cleaned",
				"source", snap.Source,
				"rows", snap.Total,
				"dropped", snap.Dropped,
				"records", len(snap.Records),
			)

			return opts.withOutput(cmd, func(w io.Writer) error {
				return export.CSV(w, snap.Records)
			})
		},
	}
}

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "report {orders|drivers|restaurants}",
		Short:     "Print one dashboard view as JSON",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{core.GroupOrders, core.GroupDrivers, core.GroupRestaurants},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, snap, err := opts.load(cmd)
			if err != nil {
				return err
			}
			f, err := filter(cfg)
			if err != nil {
				return err
			}

			view, err := snap.View(args[0], f)
			if err != nil {
				return err
			}

			return opts.withOutput(cmd, func(w io.Writer) error {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			})
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <table>",
		Short: "Write one aggregation table as CSV or XLSX",
		Long:  "Writes a single registered table. Run 'delish tables' for the list of keys.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, snap, err := opts.load(cmd)
			if err != nil {
				return err
			}
			f, err := filter(cfg)
			if err != nil {
				return err
			}

			def, rows, err := snap.Table(args[0], f)
			if err != nil {
				return err
			}

			return opts.withOutput(cmd, func(w io.Writer) error {
				return export.Write(w, ft, def.Info.Key, rows)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "output format: csv or xlsx")
	return cmd
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the aggregation tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GROUP\tTABLE\tDESCRIPTION")
			for _, def := range core.All() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", def.Info.Group, def.Info.Key, def.Info.Label)
			}
			return tw.Flush()
		},
	}
}
