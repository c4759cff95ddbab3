package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ConversionRecord represents one completed dashboard conversion
type ConversionRecord struct {
	// ID uniquely identifies the record
	ID string `json:"id"`
	// SourceFile is the Datadog dashboard that was converted
	SourceFile string `json:"source_file"`
	// OutputFile is where the Grafana dashboard was written, empty for stdout
	OutputFile string `json:"output_file,omitempty"`
	// Title is the dashboard title
	Title string `json:"title"`
	// UID is the uid assigned to the converted dashboard
	UID string `json:"uid"`
	// Widgets is the number of widgets processed
	Widgets int `json:"widgets"`
	// Converted is the number of widgets mapped to native panels
	Converted int `json:"converted"`
	// Placeholders is the number of widgets degraded to text placeholders
	Placeholders int `json:"placeholders"`
	// ConvertedAt is when the conversion ran
	ConvertedAt time.Time `json:"converted_at"`
}

// ConversionStore defines the interface for persistent conversion history
type ConversionStore interface {
	// Open initializes the store and makes it ready for use
	Open() error

	// Close closes the store and releases any resources
	Close() error

	// SaveRecord stores a conversion record. A missing ID and timestamp
	// are filled in.
	SaveRecord(ctx context.Context, record *ConversionRecord) error

	// GetRecord retrieves a record by its ID
	GetRecord(ctx context.Context, id string) (*ConversionRecord, error)

	// ListRecords retrieves records ordered newest first. A limit of 0
	// returns all records.
	ListRecords(ctx context.Context, limit int) ([]*ConversionRecord, error)

	// DeleteRecord removes a record from the store
	DeleteRecord(ctx context.Context, id string) error
}

// ErrRecordNotFound is returned when a record with the specified ID is not found
type ErrRecordNotFound struct {
	ID string
}

// Error implements the error interface
func (e ErrRecordNotFound) Error() string {
	return "conversion record not found: " + e.ID
}

// IsNotFound returns true if the error is ErrRecordNotFound
func IsNotFound(err error) bool {
	_, ok := err.(ErrRecordNotFound)
	return ok
}

// DefaultStorePath returns the default history database location under the
// user's data directory.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "graang-history.db"
	}
	return filepath.Join(home, ".local", "share", "graang", "history.db")
}

// stampRecord fills in the ID and timestamp of a record before storage
func stampRecord(record *ConversionRecord) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.ConvertedAt.IsZero() {
		record.ConvertedAt = time.Now().UTC()
	}
}

// sortRecords orders records newest first, breaking timestamp ties by ID
// so listings are stable.
func sortRecords(records []*ConversionRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].ConvertedAt.Equal(records[j].ConvertedAt) {
			return records[i].ConvertedAt.After(records[j].ConvertedAt)
		}
		return records[i].ID < records[j].ID
	})
}
