// Package auditstore persists the discrete audit events the engine
// emits around analysis runs and report exports. The engine only talks
// to the Store interface; lifecycle belongs to the host application.
package auditstore

import (
	"os"
	"path/filepath"
	"time"

	"github.com/amckenna/riskline/schema"
)

// Audit event names emitted by the engine.
const (
	EventAnalysisStarted = "analysis started"
	EventAnalysisRun     = "analysis run"
	EventReportExported  = "report exported"
)

// Event is one recorded audit notification.
type Event struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Store is the injected audit sink capability.
type Store interface {
	// RecordEvent persists one event and returns its assigned ID.
	RecordEvent(name string, occurredAt time.Time, payload map[string]any) (int64, error)

	// ListEvents returns the most recent events, newest first.
	ListEvents(limit int) ([]Event, error)

	// Close releases the underlying resources.
	Close() error
}

// NewStore creates a Store for the configured backend. NoneBackend
// yields a store that silently drops events.
func NewStore(backend schema.DatabaseBackend, connStr string) (Store, error) {
	if backend == schema.NoneBackend {
		return &noopStore{}, nil
	}
	return newSQLStore(backend, connStr)
}

// GetAuditDBFilePath returns the default SQLite database location.
func GetAuditDBFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".riskline-audit.db"
	}
	return filepath.Join(home, ".riskline", "audit.db")
}

// noopStore drops all events. Used when auditing is disabled.
type noopStore struct{}

func (*noopStore) RecordEvent(string, time.Time, map[string]any) (int64, error) { return 0, nil }
func (*noopStore) ListEvents(int) ([]Event, error)                              { return nil, nil }
func (*noopStore) Close() error                                                 { return nil }
