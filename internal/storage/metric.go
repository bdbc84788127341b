// ABOUTME: Metric accessor bound to one patient identifier in a store.
// ABOUTME: Every read re-queries the store; derived indices delegate to models.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/healthmetrics/internal/models"
)

// Metric is a per-patient view over stored measurements. It caches nothing, so
// changes made to the store between two reads are visible to the second read.
// When several rows share the identifier, the first inserted row is used.
type Metric struct {
	PatientID string
	store     *Store
}

// newMetric binds an accessor to patientID in s.
func newMetric(s *Store, patientID string) *Metric {
	return &Metric{PatientID: patientID, store: s}
}

// HeightCM returns the stored height in centimetres, or nil if not measured.
func (m *Metric) HeightCM() (*float64, error) {
	return m.fetch(colHeightCM)
}

// WeightKG returns the stored weight in kilograms, or nil if not measured.
func (m *Metric) WeightKG() (*float64, error) {
	return m.fetch(colWeightKG)
}

// WaistCM returns the stored waist circumference in centimetres, or nil.
func (m *Metric) WaistCM() (*float64, error) {
	return m.fetch(colWaistCM)
}

// SystolicBP returns the stored systolic pressure, or nil.
func (m *Metric) SystolicBP() (*float64, error) {
	return m.fetch(colSystolicBP)
}

// DiastolicBP returns the stored diastolic pressure, or nil.
func (m *Metric) DiastolicBP() (*float64, error) {
	return m.fetch(colDiastolicBP)
}

// Snapshot reads all five measurements in a single statement. The result is a
// point-in-time copy; call Snapshot again to observe later changes.
func (m *Metric) Snapshot() (models.Measurements, error) {
	var out models.Measurements
	var height, weight, waist, systolic, diastolic sql.NullFloat64

	err := m.store.withConn(func(db *sql.DB) error {
		return db.QueryRow(`
			SELECT height_cm, weight_kg, waist_cm, systolic_bp, diastolic_bp
			FROM metrics
			WHERE patient_id = ?
			ORDER BY rowid
			LIMIT 1`, m.PatientID).Scan(&height, &weight, &waist, &systolic, &diastolic)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("read measurements for %q: %w", m.PatientID, err)
	}

	out.HeightCM = nullable(height)
	out.WeightKG = nullable(weight)
	out.WaistCM = nullable(waist)
	out.SystolicBP = nullable(systolic)
	out.DiastolicBP = nullable(diastolic)
	return out, nil
}

// BMI returns the body mass index. ok is false when height or weight is missing.
func (m *Metric) BMI() (bmi float64, ok bool, err error) {
	snap, err := m.Snapshot()
	if err != nil {
		return 0, false, err
	}
	return snap.BMI()
}

// BMICategory returns the BMI bucket. ok is false when BMI is unavailable.
func (m *Metric) BMICategory() (models.BMICategory, bool, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return "", false, err
	}
	return snap.BMICategory()
}

// BloodPressureCategory returns the blood-pressure label. ok is false when
// either reading is missing.
func (m *Metric) BloodPressureCategory() (models.BloodPressureCategory, bool, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return "", false, err
	}
	cat, ok := snap.BloodPressureCategory()
	return cat, ok, nil
}

// WaistToHeightRatio returns waist / height. ok is false when either is missing.
func (m *Metric) WaistToHeightRatio() (ratio float64, ok bool, err error) {
	snap, err := m.Snapshot()
	if err != nil {
		return 0, false, err
	}
	return snap.WaistToHeightRatio()
}

// WaistToHeightCategory returns the risk label for the waist-to-height ratio.
func (m *Metric) WaistToHeightCategory() (models.WaistToHeightCategory, bool, error) {
	snap, err := m.Snapshot()
	if err != nil {
		return "", false, err
	}
	return snap.WaistToHeightCategory()
}

// fetch reads a single column for the bound patient. A missing row reads as nil.
func (m *Metric) fetch(column string) (*float64, error) {
	var v sql.NullFloat64

	// column is always one of the col* constants, never caller input.
	query := fmt.Sprintf(`SELECT %s FROM metrics WHERE patient_id = ? ORDER BY rowid LIMIT 1`, column)
	err := m.store.withConn(func(db *sql.DB) error {
		return db.QueryRow(query, m.PatientID).Scan(&v)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s for %q: %w", column, m.PatientID, err)
	}
	return nullable(v), nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
