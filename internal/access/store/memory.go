package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"vitrina/internal/access/models"
	"vitrina/internal/sentinel"
)

// InMemory keeps allow-list records in memory for development and tests.
type InMemory struct {
	mu      sync.RWMutex
	records map[int64]*models.AccessRecord
}

// NewInMemory creates an in-memory allow-list store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[int64]*models.AccessRecord)}
}

// Create inserts a record unless the telegram id is already granted.
func (s *InMemory) Create(_ context.Context, record *models.AccessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.TelegramID]; exists {
		return fmt.Errorf("telegram id must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	s.records[record.TelegramID] = record
	return nil
}

// FindByTelegramID retrieves the record for a telegram id.
func (s *InMemory) FindByTelegramID(_ context.Context, telegramID int64) (*models.AccessRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[telegramID]; ok {
		return record, nil
	}
	return nil, sentinel.ErrNotFound
}

// Delete removes the record for a telegram id.
func (s *InMemory) Delete(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[telegramID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, telegramID)
	return nil
}

// ListAll returns all records ordered by creation time, newest first.
func (s *InMemory) ListAll(_ context.Context) ([]*models.AccessRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*models.AccessRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Count returns the total number of records.
func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
