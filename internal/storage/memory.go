package storage

import (
	"context"
	"sync"

	"github.com/graang/graang/internal/utils/logger"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of ConversionStore for testing
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*ConversionRecord
}

// NewMemoryStore creates a new in-memory store for testing
func NewMemoryStore() ConversionStore {
	return &MemoryStore{
		records: make(map[string]*ConversionRecord),
	}
}

// Open initializes the store
func (s *MemoryStore) Open() error {
	logger.Debug("Opening memory store")
	return nil
}

// Close closes the store
func (s *MemoryStore) Close() error {
	logger.Debug("Closing memory store")
	return nil
}

// SaveRecord stores a conversion record
func (s *MemoryStore) SaveRecord(ctx context.Context, record *ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stampRecord(record)
	logger.Debug("Saving conversion record in memory", zap.String("id", record.ID))
	copied := *record
	s.records[record.ID] = &copied
	return nil
}

// GetRecord retrieves a record by its ID
func (s *MemoryStore) GetRecord(ctx context.Context, id string) (*ConversionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound{ID: id}
	}

	copied := *record
	return &copied, nil
}

// ListRecords retrieves records ordered newest first
func (s *MemoryStore) ListRecords(ctx context.Context, limit int) ([]*ConversionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*ConversionRecord, 0, len(s.records))
	for _, record := range s.records {
		copied := *record
		records = append(records, &copied)
	}

	sortRecords(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// DeleteRecord removes a record from the store
func (s *MemoryStore) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrRecordNotFound{ID: id}
	}

	delete(s.records, id)
	return nil
}
