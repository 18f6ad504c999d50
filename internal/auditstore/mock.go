package auditstore

import (
	"sync"
	"time"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu     sync.Mutex
	nextID int64
	events []Event
}

var _ Store = &MockStore{} // Compile-time check

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{nextID: 1}
}

// RecordEvent appends the event in memory.
func (m *MockStore) RecordEvent(name string, occurredAt time.Time, payload map[string]any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.events = append(m.events, Event{
		ID:         id,
		Name:       name,
		OccurredAt: occurredAt,
		Payload:    payload,
	})
	return id, nil
}

// ListEvents returns up to limit events, newest first.
func (m *MockStore) ListEvents(limit int) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.events) {
		limit = len(m.events)
	}
	out := make([]Event, 0, limit)
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

// Close is a no-op for the mock.
func (m *MockStore) Close() error { return nil }

// Names returns recorded event names in insertion order. Test helper.
func (m *MockStore) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.events))
	for i, ev := range m.events {
		names[i] = ev.Name
	}
	return names
}
