// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the measurement store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthmetrics/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CONFIGURATION:

  {
    "mcpServers": {
      "healthmetrics": {
        "command": "healthmetrics",
        "args": ["--db", "/path/to/health_metrics.db", "mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_patient     Measurements and derived indices for one patient
  list_patients   Patient identifiers, optionally with assessments
  classify        Classify ad-hoc measurements (no store access)

AVAILABLE RESOURCES:

  healthmetrics://patients   Every patient's assessment
  healthmetrics://summary    Patient counts per category`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(s, version)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
