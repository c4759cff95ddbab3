package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/graang/graang/internal/utils/logger"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const (
	// DefaultBoltFileMode is the default file mode for the BoltDB file
	DefaultBoltFileMode = 0600

	// DefaultBoltTimeout is the default timeout for BoltDB operations
	DefaultBoltTimeout = 1 * time.Second
)

// conversionBucket is the bucket where conversion records are stored
var conversionBucket = []byte("conversions")

// BoltStore implements the ConversionStore interface using BoltDB
type BoltStore struct {
	db      *bolt.DB
	path    string
	options *BoltOptions
}

// BoltOptions configures the BoltDB store
type BoltOptions struct {
	// Path to the BoltDB file
	Path string
	// File mode for the BoltDB file
	FileMode os.FileMode
	// Timeout for BoltDB operations
	Timeout time.Duration
}

// NewBoltStore creates a new BoltStore with the given options
func NewBoltStore(opts *BoltOptions) *BoltStore {
	if opts == nil {
		opts = &BoltOptions{}
	}

	// Set default options if not provided
	if opts.Path == "" {
		opts.Path = DefaultStorePath()
	}
	if opts.FileMode == 0 {
		opts.FileMode = DefaultBoltFileMode
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultBoltTimeout
	}

	return &BoltStore{
		path:    opts.Path,
		options: opts,
	}
}

// Open initializes the BoltDB database
func (s *BoltStore) Open() error {
	logger.Debug("Opening history database", zap.String("path", s.path))

	// Make sure the directory exists
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for database: %w", err)
	}

	db, err := bolt.Open(s.path, s.options.FileMode, &bolt.Options{Timeout: s.options.Timeout})
	if err != nil {
		return fmt.Errorf("failed to open BoltDB: %w", err)
	}
	s.db = db

	// Initialize the bucket
	err = s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(conversionBucket)
		if err != nil {
			return fmt.Errorf("failed to create conversions bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		s.db.Close()
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	return nil
}

// Close closes the BoltDB database
func (s *BoltStore) Close() error {
	if s.db != nil {
		logger.Debug("Closing history database")
		return s.db.Close()
	}
	return nil
}

// SaveRecord stores a conversion record
func (s *BoltStore) SaveRecord(ctx context.Context, record *ConversionRecord) error {
	stampRecord(record)
	logger.Debug("Saving conversion record", zap.String("id", record.ID))

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(conversionBucket)
		if b == nil {
			return fmt.Errorf("conversions bucket not found")
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		if err := b.Put([]byte(record.ID), data); err != nil {
			return fmt.Errorf("failed to store record: %w", err)
		}
		return nil
	})
}

// GetRecord retrieves a record by its ID
func (s *BoltStore) GetRecord(ctx context.Context, id string) (*ConversionRecord, error) {
	logger.Debug("Getting conversion record", zap.String("id", id))

	var record *ConversionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(conversionBucket)
		if b == nil {
			return fmt.Errorf("conversions bucket not found")
		}

		data := b.Get([]byte(id))
		if data == nil {
			return ErrRecordNotFound{ID: id}
		}

		var r ConversionRecord
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		record = &r
		return nil
	})
	return record, err
}

// ListRecords retrieves records ordered newest first
func (s *BoltStore) ListRecords(ctx context.Context, limit int) ([]*ConversionRecord, error) {
	logger.Debug("Listing conversion records", zap.Int("limit", limit))

	var records []*ConversionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(conversionBucket)
		if b == nil {
			return fmt.Errorf("conversions bucket not found")
		}

		return b.ForEach(func(k, v []byte) error {
			var r ConversionRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			records = append(records, &r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortRecords(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// DeleteRecord removes a record from the store
func (s *BoltStore) DeleteRecord(ctx context.Context, id string) error {
	logger.Debug("Deleting conversion record", zap.String("id", id))

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(conversionBucket)
		if b == nil {
			return fmt.Errorf("conversions bucket not found")
		}

		if b.Get([]byte(id)) == nil {
			return ErrRecordNotFound{ID: id}
		}

		if err := b.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		return nil
	})
}
