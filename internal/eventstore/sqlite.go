package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based event store.
// Use ":memory:" for in-memory database, or a file path for persistent storage.
// The parent directory of a file path is created if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, wrap(ErrDatabaseOpenFailed, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, wrap(ErrDatabaseOpenFailed, err)
	}
	// :memory: databases are per-connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, wrap(ErrInitializeSchemaFailed, err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		payload BLOB NOT NULL,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_document_id ON events(document_id);
	CREATE INDEX IF NOT EXISTS idx_timestamp ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_event_type ON events(event_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a new event to the store.
func (s *SQLiteStore) Append(ctx context.Context, documentID, eventType string, payload []byte, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var metadataJSON []byte
	if metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return wrap(ErrMarshalPayloadFailed, err)
		}
	}

	timestamp := time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (document_id, event_type, timestamp, payload, metadata) VALUES (?, ?, ?, ?, ?)",
		documentID, eventType, timestamp, payload, metadataJSON,
	)
	if err != nil {
		return wrap(ErrEventAppendFailed, err)
	}

	return nil
}

// GetByDocumentID retrieves all events for one document, oldest first.
func (s *SQLiteStore) GetByDocumentID(ctx context.Context, documentID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, document_id, event_type, timestamp, payload, metadata FROM events WHERE document_id = ? ORDER BY id",
		documentID,
	)
	if err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

// GetRange retrieves events within a time range.
func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, document_id, event_type, timestamp, payload, metadata FROM events WHERE timestamp >= ? AND timestamp <= ? ORDER BY id",
		start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	return s.scanEvents(rows)
}

func (s *SQLiteStore) scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e BaseEvent
		var timestampUnix int64
		var metadataJSON []byte

		err := rows.Scan(&e.EventID, &e.EventDocumentID, &e.EventType, &timestampUnix, &e.EventPayload, &metadataJSON)
		if err != nil {
			return nil, wrap(ErrEventScanFailed, err)
		}

		e.EventTimestamp = time.Unix(timestampUnix, 0)

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &e.EventMetadata); err != nil {
				return nil, wrap(ErrUnmarshalPayloadFailed, err)
			}
		}

		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, wrap(ErrEventScanFailed, err)
	}

	return events, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
