package learning

import (
	"errors"
	"sync"
	"time"

	"github.com/khanglvm/quickfind/internal/storage"
)

// mockStorage is an in-memory storage.Storage.
type mockStorage struct {
	mu     sync.Mutex
	events []storage.Interaction
}

func newMockStorage() *mockStorage {
	return &mockStorage{}
}

func (m *mockStorage) Init() error  { return nil }
func (m *mockStorage) Close() error { return nil }

func (m *mockStorage) RecordInteraction(event storage.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockStorage) RecentInteractions(limit int) ([]storage.Interaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storage.Interaction, 0, limit)
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func (m *mockStorage) CountInteractions() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events), nil
}

func (m *mockStorage) RecordSearch(storage.SearchRecord) error { return nil }
func (m *mockStorage) Cleanup(time.Duration) error            { return nil }

func (m *mockStorage) count() int {
	n, _ := m.CountInteractions()
	return n
}

// errorMockStorage fails every write.
type errorMockStorage struct {
	initErr error
}

func (e *errorMockStorage) Init() error  { return e.initErr }
func (e *errorMockStorage) Close() error { return nil }
func (e *errorMockStorage) RecordInteraction(storage.Interaction) error {
	return errors.New("storage error")
}
func (e *errorMockStorage) RecentInteractions(int) ([]storage.Interaction, error) {
	return nil, errors.New("storage error")
}
func (e *errorMockStorage) CountInteractions() (int, error)          { return 0, errors.New("storage error") }
func (e *errorMockStorage) RecordSearch(storage.SearchRecord) error { return errors.New("storage error") }
func (e *errorMockStorage) Cleanup(time.Duration) error             { return errors.New("storage error") }
