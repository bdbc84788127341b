// ABOUTME: CLI command for listing patients with their index categories.
// ABOUTME: Prints one line per distinct patient identifier.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthmetrics/internal/models"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List patients",
	Long: `List every patient in the store with their derived categories.

OUTPUT FORMAT:

  Each line shows: PATIENT  BMI  BMI-CATEGORY  BP-CATEGORY  WAIST/HEIGHT-CATEGORY

  "-" marks an index whose inputs are missing.

EXAMPLES:

  healthmetrics list
  healthmetrics list -n 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		assessments, err := s.Assessments()
		if err != nil {
			return fmt.Errorf("failed to list patients: %w", err)
		}

		if len(assessments) == 0 {
			fmt.Println("No patients found.")
			return nil
		}

		faint := color.New(color.Faint)
		for i, a := range assessments {
			if listLimit > 0 && i >= listLimit {
				faint.Printf("... %d more\n", len(assessments)-listLimit)
				break
			}
			fmt.Printf("%s %s %s %s %s\n",
				padRight(a.PatientID, 10),
				padRight(formatValue(a.BMI, "%.1f"), 6),
				categoryColor(padRight(orDash(string(a.BMICategory)), 14)),
				categoryColor(padRight(orDash(string(a.BloodPressureCategory)), 28)),
				categoryColor(orDash(string(a.WaistToHeightCategory))))
		}

		return nil
	},
}

func formatValue(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// categoryColor highlights a category by severity. Padding in s is kept.
func categoryColor(s string) string {
	switch strings.TrimSpace(s) {
	case string(models.BMINormal), string(models.BPNormal), string(models.WaistToHeightLowRisk):
		return color.GreenString(s)
	case string(models.BMIUnderweight), string(models.BMIOverweight), string(models.BPElevated), string(models.BPStage1):
		return color.YellowString(s)
	case string(models.BMIObesity), string(models.BPStage2), string(models.BPHypertensiveCrisis), string(models.WaistToHeightHighRisk):
		return color.RedString(s)
	default:
		return s
	}
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max number of patients (0 for all)")
	rootCmd.AddCommand(listCmd)
}
