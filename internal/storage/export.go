// ABOUTME: Assessment export for patient measurements and derived indices.
// ABOUTME: Supports JSON, YAML, Markdown, and Prometheus textfile output formats.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/healthmetrics/internal/models"
	"gopkg.in/yaml.v3"
)

// Assessment is a patient's raw measurements plus every derived index.
// Derived fields are nil or empty when their inputs are missing.
type Assessment struct {
	PatientID             string                       `json:"patient_id" yaml:"patient_id"`
	Measurements          models.Measurements          `json:"measurements" yaml:"measurements"`
	BMI                   *float64                     `json:"bmi,omitempty" yaml:"bmi,omitempty"`
	BMICategory           models.BMICategory           `json:"bmi_category,omitempty" yaml:"bmi_category,omitempty"`
	BloodPressureCategory models.BloodPressureCategory `json:"blood_pressure_category,omitempty" yaml:"blood_pressure_category,omitempty"`
	WaistToHeightRatio    *float64                     `json:"waist_to_height_ratio,omitempty" yaml:"waist_to_height_ratio,omitempty"`
	WaistToHeightCategory models.WaistToHeightCategory `json:"waist_to_height_category,omitempty" yaml:"waist_to_height_category,omitempty"`
	Error                 string                       `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrNonFinite is recorded when a derived index overflows to an infinity or NaN.
var ErrNonFinite = errors.New("result is not a finite number")

// ExportData represents the full export format.
type ExportData struct {
	Version     string        `json:"version" yaml:"version"`
	ExportedAt  time.Time     `json:"exported_at" yaml:"exported_at"`
	Tool        string        `json:"tool" yaml:"tool"`
	Assessments []*Assessment `json:"assessments" yaml:"assessments"`
}

// Assess evaluates every derived index for one set of measurements. A zero
// height, or a ratio too large to represent, is recorded in Error rather than
// aborting the caller.
func Assess(patientID string, m models.Measurements) *Assessment {
	a := &Assessment{PatientID: patientID, Measurements: m}
	var problems []string

	if bmi, ok, err := m.BMI(); err != nil {
		problems = append(problems, fmt.Sprintf("bmi: %v", err))
	} else if ok && !finite(bmi) {
		problems = append(problems, fmt.Sprintf("bmi: %v", ErrNonFinite))
	} else if ok {
		a.BMI = &bmi
		a.BMICategory = models.ClassifyBMI(bmi)
	}

	if cat, ok := m.BloodPressureCategory(); ok {
		a.BloodPressureCategory = cat
	}

	if ratio, ok, err := m.WaistToHeightRatio(); err != nil {
		problems = append(problems, fmt.Sprintf("waist to height: %v", err))
	} else if ok && !finite(ratio) {
		problems = append(problems, fmt.Sprintf("waist to height: %v", ErrNonFinite))
	} else if ok {
		a.WaistToHeightRatio = &ratio
		a.WaistToHeightCategory = models.ClassifyWaistToHeight(ratio)
	}

	a.Error = strings.Join(problems, "; ")
	return a
}

// Assess reads the metric's current measurements and evaluates them.
func (m *Metric) Assess() (*Assessment, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	return Assess(m.PatientID, snap), nil
}

// Assessments evaluates every patient in the store, sorted by identifier.
func (s *Store) Assessments() ([]*Assessment, error) {
	metrics, err := s.All()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(metrics))
	for id := range metrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Assessment, 0, len(ids))
	for _, id := range ids {
		a, err := metrics[id].Assess()
		if err != nil {
			return nil, fmt.Errorf("assess %q: %w", id, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// GetAllData collects every assessment for export.
func (s *Store) GetAllData() (*ExportData, error) {
	assessments, err := s.Assessments()
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Version:     "1.0",
		ExportedAt:  time.Now(),
		Tool:        "healthmetrics",
		Assessments: assessments,
	}, nil
}

// ExportJSON exports all assessments as JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all assessments as YAML.
func (s *Store) ExportYAML() ([]byte, error) {
	data, err := s.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version     string        `yaml:"version"`
		ExportedAt  string        `yaml:"exported_at"`
		Tool        string        `yaml:"tool"`
		Assessments []*Assessment `yaml:"assessments"`
	}{
		Version:     data.Version,
		ExportedAt:  data.ExportedAt.Format(time.RFC3339),
		Tool:        data.Tool,
		Assessments: data.Assessments,
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown exports assessments as a Markdown table.
func (s *Store) ExportMarkdown() (string, error) {
	assessments, err := s.Assessments()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Health Metrics Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(assessments) == 0 {
		sb.WriteString("No patients found.\n")
		return sb.String(), nil
	}

	sb.WriteString("| Patient | Height | Weight | Waist | BP | BMI | BMI Category | BP Category | Waist/Height | Waist/Height Category |\n")
	sb.WriteString("|---------|--------|--------|-------|----|-----|--------------|-------------|--------------|-----------------------|\n")
	for _, a := range assessments {
		m := a.Measurements
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s/%s | %s | %s | %s | %s | %s |\n",
			mdText(a.PatientID),
			mdValue(m.HeightCM, "%.1f"), mdValue(m.WeightKG, "%.1f"), mdValue(m.WaistCM, "%.1f"),
			mdValue(m.SystolicBP, "%.0f"), mdValue(m.DiastolicBP, "%.0f"),
			mdValue(a.BMI, "%.1f"), mdText(string(a.BMICategory)),
			mdText(string(a.BloodPressureCategory)),
			mdValue(a.WaistToHeightRatio, "%.3f"), mdText(string(a.WaistToHeightCategory))))
	}

	return sb.String(), nil
}

func mdValue(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func mdText(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}
