// ABOUTME: Repository interface for read access to patient measurements.
// ABOUTME: Defines the contract the MCP server and other consumers depend on.
package storage

// Repository defines read access to a measurement store.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Lookup
	Get(patientID string) (*Metric, bool, error)
	PatientIDs() ([]string, error)

	// Derived views
	Assessments() ([]*Assessment, error)
	Summary() (*Summary, error)

	// Export
	ExportJSON() ([]byte, error)

	// Location of the backing file
	Path() string
}

// Compile-time check that Store implements Repository.
var _ Repository = (*Store)(nil)
