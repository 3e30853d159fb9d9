package main

import (
	"os"

	"github.com/spf13/cobra"
)

// defaultConfigPath is used when neither --config nor RIGCALC_CONFIG is set.
const defaultConfigPath = "configs/config.yaml"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "rigcalc",
		Short:         "DMX rig calculator",
		Long:          "rigcalc patches lighting fixtures into DMX universes and totals circuit power.",
		Version:       version + " (" + commit + ", " + date + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath, serveOptions{})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPathFromEnv(),
		"config file (env RIGCALC_CONFIG)")

	root.AddCommand(
		newServeCmd(&configPath),
		newReportCmd(&configPath),
		newCatalogCmd(&configPath),
	)
	return root
}

// configPathFromEnv returns RIGCALC_CONFIG, or the default path.
func configPathFromEnv() string {
	if path := os.Getenv("RIGCALC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
