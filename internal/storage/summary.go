// ABOUTME: Category summaries over assessments and Prometheus textfile export.
// ABOUTME: Gauges are written for node_exporter's textfile collector.
package storage

import (
	"fmt"

	"github.com/harperreed/healthmetrics/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Index names used as the "index" label and summary keys.
const (
	IndexBMI           = "bmi"
	IndexBloodPressure = "blood_pressure"
	IndexWaistToHeight = "waist_to_height"

	// CategoryUnknown counts patients whose inputs were missing or invalid.
	CategoryUnknown = "unknown"
)

// Summary counts patients per category for each index. Every category in the
// vocabulary is present, including zero counts.
type Summary struct {
	Patients int                       `json:"patients" yaml:"patients"`
	Indices  map[string]map[string]int `json:"indices" yaml:"indices"`
}

// Summarize tallies assessments by category.
func Summarize(assessments []*Assessment) *Summary {
	sum := &Summary{
		Patients: len(assessments),
		Indices: map[string]map[string]int{
			IndexBMI:           {CategoryUnknown: 0},
			IndexBloodPressure: {CategoryUnknown: 0},
			IndexWaistToHeight: {CategoryUnknown: 0},
		},
	}
	for _, c := range models.AllBMICategories {
		sum.Indices[IndexBMI][string(c)] = 0
	}
	for _, c := range models.AllBloodPressureCategories {
		sum.Indices[IndexBloodPressure][string(c)] = 0
	}
	for _, c := range models.AllWaistToHeightCategories {
		sum.Indices[IndexWaistToHeight][string(c)] = 0
	}

	for _, a := range assessments {
		sum.add(IndexBMI, string(a.BMICategory))
		sum.add(IndexBloodPressure, string(a.BloodPressureCategory))
		sum.add(IndexWaistToHeight, string(a.WaistToHeightCategory))
	}
	return sum
}

func (s *Summary) add(index, category string) {
	if category == "" {
		category = CategoryUnknown
	}
	s.Indices[index][category]++
}

// Registry builds a private Prometheus registry holding the summary gauges.
func (s *Summary) Registry() (*prometheus.Registry, *prometheus.GaugeVec) {
	patients := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "healthmetrics_patients",
		Help: "Number of distinct patients in the store",
	})
	byCategory := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "healthmetrics_patients_by_category",
			Help: "Number of patients per derived index category",
		},
		[]string{"index", "category"},
	)

	patients.Set(float64(s.Patients))
	for index, cats := range s.Indices {
		for cat, n := range cats {
			byCategory.WithLabelValues(index, cat).Set(float64(n))
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(patients, byCategory)
	return reg, byCategory
}

// Summary tallies every patient in the store.
func (s *Store) Summary() (*Summary, error) {
	assessments, err := s.Assessments()
	if err != nil {
		return nil, err
	}
	return Summarize(assessments), nil
}

// ExportPrometheus writes the category gauges to path in the text exposition
// format. The file is replaced atomically.
func (s *Store) ExportPrometheus(path string) error {
	sum, err := s.Summary()
	if err != nil {
		return err
	}
	reg, _ := sum.Registry()
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	return nil
}
