package storage

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_Basic(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Open(); err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Test saving
	record := createTestRecord("memory-test-1", time.Now().UTC())
	if err := store.SaveRecord(ctx, record); err != nil {
		t.Fatalf("Failed to save record: %v", err)
	}

	// Test retrieval
	retrieved, err := store.GetRecord(ctx, record.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if retrieved.Title != record.Title {
		t.Errorf("Retrieved title does not match: got %s, want %s", retrieved.Title, record.Title)
	}

	// Test listing
	records, err := store.ListRecords(ctx, 0)
	if err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record, got %d", len(records))
	}

	// Test deletion
	if err := store.DeleteRecord(ctx, record.ID); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}
	if _, err := store.GetRecord(ctx, record.ID); !IsNotFound(err) {
		t.Errorf("Expected NotFound error after deletion, got: %v", err)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.GetRecord(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("Expected NotFound error, got: %v", err)
	}
	if err := store.DeleteRecord(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("Expected NotFound error, got: %v", err)
	}
}

func TestMemoryStore_ListOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		record := createTestRecord(id, base.Add(time.Duration(i)*time.Hour))
		if err := store.SaveRecord(ctx, record); err != nil {
			t.Fatalf("Failed to save record: %v", err)
		}
	}

	records, err := store.ListRecords(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records with limit, got %d", len(records))
	}
	if records[0].ID != "third" || records[1].ID != "second" {
		t.Errorf("Records not ordered newest first: %s, %s", records[0].ID, records[1].ID)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	record := createTestRecord("copy-test", time.Now().UTC())
	if err := store.SaveRecord(ctx, record); err != nil {
		t.Fatalf("Failed to save record: %v", err)
	}

	retrieved, err := store.GetRecord(ctx, record.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	retrieved.Title = "mutated"

	again, err := store.GetRecord(ctx, record.ID)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if again.Title != record.Title {
		t.Errorf("Store contents were mutated through a returned record")
	}
}
