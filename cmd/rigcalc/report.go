package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aemckenna/rig-calc/internal/infrastructure/config"
	"github.com/aemckenna/rig-calc/internal/infrastructure/logging"
	"github.com/aemckenna/rig-calc/internal/report"
)

func newReportCmd(configPath *string) *cobra.Command {
	var (
		universe int
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print universe usage and circuit load for the stored rig",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			// stdout carries the report.
			logCfg := cfg.Logging
			logCfg.Output = "stderr"
			log := logging.New(logCfg, version)

			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // Read-only use

			sess, err := openSession(cmd.Context(), cfg, db, log)
			if err != nil {
				return err
			}
			summary, err := sess.Summary()
			if err != nil {
				return fmt.Errorf("summarising rig: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			w := report.New(out)
			if err := w.Summary(summary); err != nil {
				return err
			}
			if !cmd.Flags().Changed("universe") {
				return nil
			}
			grid, err := sess.Grid(universe)
			if err != nil {
				return fmt.Errorf("universe %d: %w", universe, err)
			}
			return w.Grid(grid)
		},
	}
	cmd.Flags().IntVarP(&universe, "universe", "u", 0, "also print the channel grid of this universe")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
