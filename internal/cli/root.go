// Package cli wires the covidetl commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "covidetl",
		Short:        "covidetl — COVID-19 statistics ETL pipeline",
		Long:         "covidetl fetches daily COVID-19 report totals per country, transforms them into parquet datasets, and uploads the results to S3.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to logs/covidetl.log")

	cmd.AddCommand(runCmd(&debug))
	cmd.AddCommand(initCmd())
	cmd.AddCommand(configCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}
