// ABOUTME: Patient lookup and enumeration over the metrics table.
// ABOUTME: Resolves duplicate identifiers to the first inserted row everywhere.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Get returns an accessor for patientID. A missing patient is reported with
// ok == false and a nil error.
func (s *Store) Get(patientID string) (m *Metric, ok bool, err error) {
	var id string
	err = s.withConn(func(db *sql.DB) error {
		return db.QueryRow(`
			SELECT patient_id FROM metrics
			WHERE patient_id = ?
			ORDER BY rowid
			LIMIT 1`, patientID).Scan(&id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get metric: %w", err)
	}
	return newMetric(s, id), true, nil
}

// All returns an accessor for every distinct patient identifier.
func (s *Store) All() (map[string]*Metric, error) {
	ids, err := s.PatientIDs()
	if err != nil {
		return nil, err
	}

	metrics := make(map[string]*Metric, len(ids))
	for _, id := range ids {
		metrics[id] = newMetric(s, id)
	}
	return metrics, nil
}

// PatientIDs returns distinct patient identifiers in first-inserted order.
func (s *Store) PatientIDs() ([]string, error) {
	var ids []string
	err := s.withConn(func(db *sql.DB) error {
		rows, err := db.Query(`SELECT patient_id FROM metrics ORDER BY rowid`)
		if err != nil {
			return err
		}
		defer rows.Close()

		seen := make(map[string]bool)
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list patient ids: %w", err)
	}
	return ids, nil
}

// Count returns the number of stored rows, duplicates included.
func (s *Store) Count() (int, error) {
	var n int
	err := s.withConn(func(db *sql.DB) error {
		return db.QueryRow(`SELECT COUNT(*) FROM metrics`).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count metrics: %w", err)
	}
	return n, nil
}
