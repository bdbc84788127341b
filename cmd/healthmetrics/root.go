// ABOUTME: Root Cobra command for healthmetrics CLI.
// ABOUTME: Loads configuration and initializes logging via PersistentPreRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthmetrics/internal/config"
	"github.com/harperreed/healthmetrics/internal/logging"
	"github.com/harperreed/healthmetrics/internal/storage"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	dbPath  string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "healthmetrics",
	Short:         "Patient measurement store with derived health indices",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Healthmetrics stores per-patient body measurements in a local SQLite file
and derives standard clinical indices from them.

WHAT IT STORES:

  Height_cm, Weight_kg, Waist_cm, Systolic_BP, Diastolic_BP per PatientID

WHAT IT DERIVES:

  BMI                 Underweight, Normal weight, Overweight, Obesity
  Blood pressure      Normal, Elevated, High Blood Pressure Stage 1 and 2
  Waist-to-height     Low Risk (<= 0.5), High Risk

QUICK START:

  $ healthmetrics load patients.csv     # Rebuild the store from a CSV file
  $ healthmetrics list                  # One line per patient
  $ healthmetrics show 1001             # Raw values and indices for one patient
  $ healthmetrics export prom -o hm.prom

MCP INTEGRATION:

  Run 'healthmetrics mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "healthmetrics": { "command": "healthmetrics", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The store path is taken from --db, then $HEALTHMETRICS_DB, then db_path in
  ~/.config/healthmetrics/config.json, then health_metrics.db in the current
  directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := logging.ParseLevel(cfg.GetLogLevel())
		if verbose {
			level = log.DebugLevel
		}
		logging.Init(os.Stderr, level)
		return nil
	},
}

// openStore opens the configured store, creating it if needed.
func openStore() (*storage.Store, error) {
	return cfg.OpenStorage(dbPath)
}

// storePath resolves the store path without opening it.
func storePath() string {
	if dbPath != "" {
		return config.ExpandPath(dbPath)
	}
	return cfg.GetDBPath()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "store file (default: $HEALTHMETRICS_DB or health_metrics.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}
