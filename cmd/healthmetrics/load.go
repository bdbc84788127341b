// ABOUTME: CLI command for bulk loading delimited text into the store.
// ABOUTME: Replaces the whole store with the file's rows.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthmetrics/internal/loader"
	"github.com/spf13/cobra"
)

var (
	loadStrict    bool
	loadDelimiter string
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Rebuild the store from a delimited text file",
	Long: `Load patient measurements from a headered delimited text file.

The existing store is deleted and rebuilt from scratch. Every row is parsed
before anything is deleted, so a malformed number aborts the load and leaves
the previous store in place.

INPUT FORMAT:

  PatientID,Height_cm,Weight_kg,Waist_cm,Systolic_BP,Diastolic_BP
  1001,170,65,75,118,76

  Values are split on the delimiter with no quoting or escaping. Empty or
  missing numeric values are stored as 0. Blank lines are skipped.

OPTIONS:

  --strict        Reject rows whose value count differs from the header
  --delimiter     Field separator (default "," or delimiter from config)

EXAMPLES:

  healthmetrics load patients.csv
  healthmetrics load patients.tsv --delimiter $'\t'
  healthmetrics load patients.csv --strict`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim := loadDelimiter
		if delim == "" {
			delim = cfg.GetDelimiter()
		}

		s, res, err := loader.LoadFile(args[0], storePath(), loader.Options{
			Delimiter: delim,
			Strict:    loadStrict,
		})
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}

		color.Green("✓ Loaded %d rows into %s", res.Rows, s.Path())
		if res.ShortRows > 0 {
			color.Yellow("  %d short rows: missing values stored as 0", res.ShortRows)
		}
		if res.LongRows > 0 {
			color.Yellow("  %d long rows: extra values dropped", res.LongRows)
		}
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVar(&loadStrict, "strict", false, "reject rows whose value count differs from the header")
	loadCmd.Flags().StringVarP(&loadDelimiter, "delimiter", "d", "", "field delimiter (default \",\")")
	rootCmd.AddCommand(loadCmd)
}
