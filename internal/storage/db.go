// ABOUTME: SQLite store lifecycle for patient measurements.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO) with one connection per statement.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthmetrics/internal/logging"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the store file used when no path is configured.
const DefaultDBPath = "health_metrics.db"

// Store is a handle on a store file. It holds no open connection: every
// operation connects, executes one statement, and disconnects.
type Store struct {
	path string
	log  *log.Logger
}

// Open returns a Store for dbPath after initializing its schema.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{
		path: dbPath,
		log:  logging.Logger(logging.SourceDB).With("path", dbPath),
	}

	if err := s.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	return s, nil
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// Remove deletes the store file at dbPath along with any SQLite sidecar files.
// Missing files are not an error.
func Remove(dbPath string) error {
	logger := logging.Logger(logging.SourceDB).With("path", dbPath)
	for _, p := range []string{dbPath, dbPath + "-journal", dbPath + "-wal", dbPath + "-shm"} {
		err := os.Remove(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("remove %s: %w", p, err)
		}
		logger.Debug("removed store file", "file", p)
	}
	return nil
}

// dsn builds the driver connection string. busy_timeout lets a statement wait
// on another process's file lock instead of failing immediately. The path is
// percent-escaped so that '?', '#' and '%' in a file name stay part of it.
func (s *Store) dsn() string {
	u := url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     s.path,
		RawQuery: "_pragma=busy_timeout(5000)",
	}
	return u.String()
}

// withConn opens a connection, runs fn, and closes the connection.
func (s *Store) withConn(fn func(db *sql.DB) error) error {
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	fnErr := fn(db)
	if err := db.Close(); err != nil && fnErr == nil {
		return fmt.Errorf("close database: %w", err)
	}
	return fnErr
}
