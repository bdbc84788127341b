// ABOUTME: Insertion paths for patient measurements.
// ABOUTME: Coerces loosely-typed field maps and inserts rows unconditionally.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/harperreed/healthmetrics/internal/models"
)

// ErrMalformedValue is returned when a numeric field cannot be parsed.
var ErrMalformedValue = errors.New("malformed numeric value")

// Record is one row to insert. Nil measurements are stored as NULL.
type Record struct {
	PatientID           string `json:"patient_id" yaml:"patient_id"`
	models.Measurements `yaml:",inline"`
}

// RecordFromFields coerces a field-name-to-text map, as produced by the bulk
// loader, into a Record. Absent or empty numeric fields become 0.0 and a
// missing PatientID becomes the empty string. Surrounding whitespace is
// trimmed, but a whitespace-only value is malformed, as are NaN and infinities.
func RecordFromFields(fields map[string]string) (Record, error) {
	r := Record{PatientID: fields[models.FieldPatientID]}

	for _, name := range models.NumericFields {
		raw := fields[name]
		v := 0.0
		if raw != "" {
			var err error
			v, err = strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || !finite(v) {
				return Record{}, fmt.Errorf("%w: %s=%q", ErrMalformedValue, name, raw)
			}
		}
		r.Set(name, models.Float(v))
	}

	return r, nil
}

// Insert stores r as a new row and returns an accessor bound to its identifier.
// No existing rows are checked or updated. Non-finite measurements are rejected.
func (s *Store) Insert(r Record) (*Metric, error) {
	for _, name := range models.NumericFields {
		if v := r.Value(name); v != nil && !finite(*v) {
			return nil, fmt.Errorf("%w: %s=%v", ErrMalformedValue, name, *v)
		}
	}

	err := s.withConn(func(db *sql.DB) error {
		_, err := db.Exec(`
			INSERT INTO metrics (
				patient_id, height_cm, weight_kg, waist_cm,
				systolic_bp, diastolic_bp
			)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.PatientID,
			nullFloat(r.HeightCM),
			nullFloat(r.WeightKG),
			nullFloat(r.WaistCM),
			nullFloat(r.SystolicBP),
			nullFloat(r.DiastolicBP),
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert metric: %w", err)
	}
	return newMetric(s, r.PatientID), nil
}

// InsertFields coerces fields with RecordFromFields and inserts the result.
func (s *Store) InsertFields(fields map[string]string) (*Metric, error) {
	r, err := RecordFromFields(fields)
	if err != nil {
		return nil, err
	}
	return s.Insert(r)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
