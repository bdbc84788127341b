// ABOUTME: CLI command for initializing the measurement store.
// ABOUTME: Creates the store file and table if absent; existing rows are kept.
package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store",
	Long: `Create the store file and its metrics table if they do not exist.

Running init against an existing store is safe: rows already present are
kept unchanged.

EXAMPLES:

  healthmetrics init
  healthmetrics --db ~/clinic/metrics.db init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		n, err := s.Count()
		if err != nil {
			return err
		}
		color.Green("✓ Store ready at %s (%d rows)", s.Path(), n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
