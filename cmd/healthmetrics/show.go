// ABOUTME: CLI command for showing one patient's measurements and indices.
// ABOUTME: Reads through the per-patient accessor.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthmetrics/internal/models"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <patient-id>",
	Aliases: []string{"get"},
	Short:   "Show a patient's measurements and derived indices",
	Long: `Show the raw measurements and derived indices for one patient.

Missing measurements are shown as "-" and any index that depends on them is
left out. When several rows share the identifier, the first loaded row is
shown.

EXAMPLES:

  healthmetrics show 1001`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		m, ok, err := s.Get(args[0])
		if err != nil {
			return fmt.Errorf("failed to get patient: %w", err)
		}
		if !ok {
			return fmt.Errorf("patient not found: %s", args[0])
		}

		a, err := m.Assess()
		if err != nil {
			return fmt.Errorf("failed to assess patient: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Printf("Patient %s\n\n", a.PatientID)
		for _, field := range models.NumericFields {
			fmt.Printf("  %s %s\n", padRight(field, 14), formatValue(a.Measurements.Value(field), "%.1f"))
		}
		fmt.Println()

		fmt.Printf("  %s %s %s\n", padRight("BMI", 14), formatValue(a.BMI, "%.2f"), categoryColor(string(a.BMICategory)))
		fmt.Printf("  %s %s\n", padRight("Blood pressure", 14), categoryColor(string(a.BloodPressureCategory)))
		fmt.Printf("  %s %s %s\n", padRight("Waist/height", 14), formatValue(a.WaistToHeightRatio, "%.3f"), categoryColor(string(a.WaistToHeightCategory)))

		if a.Error != "" {
			fmt.Println()
			faint.Printf("  note: %s\n", a.Error)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
