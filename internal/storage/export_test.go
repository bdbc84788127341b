// ABOUTME: Tests for assessment export and category summaries.
// ABOUTME: Covers JSON, YAML, Prometheus textfile output, and zero-height handling.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/healthmetrics/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seedExportStore(t *testing.T) *Store {
	t.Helper()
	s := setupTestStore(t)
	insertAll(t, s,
		Record{PatientID: "b", Measurements: models.Measurements{
			HeightCM: models.Float(170), WeightKG: models.Float(65), WaistCM: models.Float(75),
			SystolicBP: models.Float(118), DiastolicBP: models.Float(76),
		}},
		Record{PatientID: "a", Measurements: models.Measurements{
			HeightCM: models.Float(155), WeightKG: models.Float(90),
			SystolicBP: models.Float(145), DiastolicBP: models.Float(95),
		}},
		Record{PatientID: "c", Measurements: models.Measurements{
			WeightKG: models.Float(80),
		}},
	)
	return s
}

func TestAssess(t *testing.T) {
	a := Assess("p1", models.Measurements{
		HeightCM: models.Float(160), WeightKG: models.Float(45), WaistCM: models.Float(90),
	})

	require.NotNil(t, a.BMI)
	assert.InDelta(t, 17.58, *a.BMI, 0.01)
	assert.Equal(t, models.BMIUnderweight, a.BMICategory)
	assert.Empty(t, a.BloodPressureCategory)
	require.NotNil(t, a.WaistToHeightRatio)
	assert.InDelta(t, 0.5625, *a.WaistToHeightRatio, 0.0001)
	assert.Equal(t, models.WaistToHeightHighRisk, a.WaistToHeightCategory)
	assert.Empty(t, a.Error)
}

func TestAssessZeroHeight(t *testing.T) {
	a := Assess("p1", models.Measurements{
		HeightCM: models.Float(0), WeightKG: models.Float(70),
		SystolicBP: models.Float(125), DiastolicBP: models.Float(75),
	})

	assert.Nil(t, a.BMI)
	assert.Empty(t, a.BMICategory)
	assert.Contains(t, a.Error, models.ErrZeroHeight.Error())
	assert.Equal(t, models.BPElevated, a.BloodPressureCategory)
}

func TestAssessKeepsEveryError(t *testing.T) {
	a := Assess("p1", models.Measurements{
		HeightCM: models.Float(0), WeightKG: models.Float(70), WaistCM: models.Float(80),
	})

	assert.Nil(t, a.BMI)
	assert.Nil(t, a.WaistToHeightRatio)
	assert.Contains(t, a.Error, "bmi: "+models.ErrZeroHeight.Error())
	assert.Contains(t, a.Error, "waist to height: "+models.ErrZeroHeight.Error())
}

func TestAssessOverflowingBMI(t *testing.T) {
	// The squared height underflows to zero, so the quotient is +Inf.
	a := Assess("p1", models.Measurements{
		HeightCM: models.Float(1e-160), WeightKG: models.Float(70),
	})

	assert.Nil(t, a.BMI)
	assert.Empty(t, a.BMICategory)
	assert.Contains(t, a.Error, ErrNonFinite.Error())
}

func TestExportJSONWithOverflowingBMI(t *testing.T) {
	s := seedExportStore(t)
	insertAll(t, s, Record{PatientID: "d", Measurements: models.Measurements{
		HeightCM: models.Float(1e-160), WeightKG: models.Float(70),
	}})

	data, err := s.ExportJSON()
	require.NoError(t, err)

	var parsed ExportData
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed.Assessments, 4)
	assert.Nil(t, parsed.Assessments[3].BMI)
	assert.NotEmpty(t, parsed.Assessments[3].Error)
	assert.Equal(t, models.BMIObesity, parsed.Assessments[0].BMICategory)
}

func TestAssessmentsSortedByPatient(t *testing.T) {
	s := seedExportStore(t)

	got, err := s.Assessments()
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "a", got[0].PatientID)
	assert.Equal(t, "b", got[1].PatientID)
	assert.Equal(t, "c", got[2].PatientID)
	assert.Equal(t, models.BMIObesity, got[0].BMICategory)
	assert.Equal(t, models.BPStage2, got[0].BloodPressureCategory)
	assert.Nil(t, got[2].BMI)
}

func TestExportJSON(t *testing.T) {
	s := seedExportStore(t)

	data, err := s.ExportJSON()
	require.NoError(t, err)

	var parsed ExportData
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "healthmetrics", parsed.Tool)
	require.Len(t, parsed.Assessments, 3)
	assert.Equal(t, models.BMINormal, parsed.Assessments[1].BMICategory)
	assert.Equal(t, models.WaistToHeightLowRisk, parsed.Assessments[1].WaistToHeightCategory)
}

func TestExportYAML(t *testing.T) {
	s := seedExportStore(t)

	data, err := s.ExportYAML()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, "healthmetrics", parsed["tool"])
	assert.Contains(t, string(data), "bmi_category: Obesity")
	assert.Contains(t, string(data), "blood_pressure_category: Normal")
}

func TestSummarize(t *testing.T) {
	s := seedExportStore(t)

	sum, err := s.Summary()
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Patients)
	assert.Equal(t, 1, sum.Indices[IndexBMI][string(models.BMIObesity)])
	assert.Equal(t, 1, sum.Indices[IndexBMI][string(models.BMINormal)])
	assert.Equal(t, 1, sum.Indices[IndexBMI][CategoryUnknown])
	assert.Equal(t, 0, sum.Indices[IndexBMI][string(models.BMIUnderweight)])
	assert.Equal(t, 0, sum.Indices[IndexBloodPressure][string(models.BPHypertensiveCrisis)])
	assert.Equal(t, 2, sum.Indices[IndexWaistToHeight][CategoryUnknown])
}

func TestSummaryRegistry(t *testing.T) {
	sum := Summarize([]*Assessment{
		Assess("x", models.Measurements{SystolicBP: models.Float(118), DiastolicBP: models.Float(76)}),
		Assess("y", models.Measurements{SystolicBP: models.Float(119), DiastolicBP: models.Float(70)}),
	})

	_, gauges := sum.Registry()
	assert.Equal(t, 2.0, testutil.ToFloat64(gauges.WithLabelValues(IndexBloodPressure, string(models.BPNormal))))
	assert.Equal(t, 2.0, testutil.ToFloat64(gauges.WithLabelValues(IndexBMI, CategoryUnknown)))
	assert.Equal(t, 0.0, testutil.ToFloat64(gauges.WithLabelValues(IndexBloodPressure, string(models.BPStage2))))
}

func TestExportPrometheus(t *testing.T) {
	s := seedExportStore(t)
	path := filepath.Join(t.TempDir(), "healthmetrics.prom")

	require.NoError(t, s.ExportPrometheus(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "healthmetrics_patients 3")
	assert.True(t, strings.Contains(out,
		`healthmetrics_patients_by_category{category="Obesity",index="bmi"} 1`), out)
	assert.Contains(t, out, `category="Hypertensive Crisis"`)
}

func TestExportMarkdown(t *testing.T) {
	s := seedExportStore(t)

	md, err := s.ExportMarkdown()
	require.NoError(t, err)

	assert.Contains(t, md, "# Health Metrics Export")
	assert.Contains(t, md, "| a | 155.0 | 90.0 | - | 145/95 | 37.5 | Obesity | High Blood Pressure Stage 2 | - | - |")
	assert.Contains(t, md, "| c | - | 80.0 | - | -/- | - | - | - | - | - |")

	lines := strings.Split(strings.TrimSpace(md), "\n")
	assert.Len(t, lines, 9, "title and generated with blank lines, header, divider, three rows")
}

func TestExportMarkdownEmpty(t *testing.T) {
	s := setupTestStore(t)

	md, err := s.ExportMarkdown()
	require.NoError(t, err)
	assert.Contains(t, md, "No patients found.")
}

func TestMarkdownEscapesPipes(t *testing.T) {
	assert.Equal(t, `a\|b`, mdText("a|b"))
	assert.Equal(t, "-", mdText(""))
}
