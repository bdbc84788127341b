// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the single metrics table of nullable patient measurements.
package storage

import "database/sql"

// The table carries no uniqueness constraint on patient_id; duplicates are
// resolved at read time by rowid order.
const schema = `
CREATE TABLE IF NOT EXISTS metrics (
	patient_id TEXT,
	height_cm REAL,
	weight_kg REAL,
	waist_cm REAL,
	systolic_bp REAL,
	diastolic_bp REAL
)`

// Column names in table order, after patient_id.
const (
	colHeightCM    = "height_cm"
	colWeightKG    = "weight_kg"
	colWaistCM     = "waist_cm"
	colSystolicBP  = "systolic_bp"
	colDiastolicBP = "diastolic_bp"
)

// Initialize creates the metrics table if it does not exist. It is safe to
// call repeatedly and never touches existing rows.
func (s *Store) Initialize() error {
	err := s.withConn(func(db *sql.DB) error {
		_, err := db.Exec(schema)
		return err
	})
	if err != nil {
		return err
	}
	s.log.Debug("schema ready")
	return nil
}
