// ABOUTME: CLI command for exporting patient assessments.
// ABOUTME: Supports JSON, YAML, Markdown, and Prometheus textfile formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export patient assessments",
	Long: `Export every patient's measurements and derived indices.

FORMATS:

  json       Full JSON export
  yaml       YAML export (human-readable)
  markdown   Markdown table (for documentation/sharing)
  prom       Prometheus text exposition of category counts, for node_exporter's
             textfile collector (requires --output)

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  healthmetrics export json
  healthmetrics export yaml -o patients.yaml
  healthmetrics export markdown > patients.md
  healthmetrics export prom -o /var/lib/node_exporter/textfile/healthmetrics.prom`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "prom"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		s, err := openStore()
		if err != nil {
			return err
		}

		var data []byte
		switch format {
		case "json":
			data, err = s.ExportJSON()
		case "yaml":
			data, err = s.ExportYAML()
		case "markdown":
			var md string
			md, err = s.ExportMarkdown()
			data = []byte(md)
		case "prom":
			if exportOutput == "" {
				return fmt.Errorf("prom export requires --output")
			}
			if err := s.ExportPrometheus(exportOutput); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or prom)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
