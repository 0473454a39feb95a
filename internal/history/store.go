// Package history is the durable, client-local log of past searches.
// The local store is the single source of truth for the sidebar list;
// the backend receives best-effort replication only.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"recommendi/internal/domain"
	"recommendi/internal/eventbus"
)

// MaxEntries caps the history length; the oldest entry is evicted on overflow
const MaxEntries = 20

// clipLength bounds the display copy of a message
const clipLength = 25

// syncTimeout bounds each background replication attempt
const syncTimeout = 10 * time.Second

// Syncer replicates history entries to the backend
type Syncer interface {
	UpdateSession(ctx context.Context, entry domain.HistoryEntry) error
}

// Store defines session history operations
type Store interface {
	// List returns all entries, most-recent-first. Read failures degrade
	// to an empty list.
	List() []domain.HistoryEntry
	// Add inserts the entry at the head unless one with the same full
	// message already exists. Reports whether a new entry was created.
	Add(entry domain.HistoryEntry) (bool, error)
	// Clear erases all entries. Caller is responsible for user confirmation.
	Clear() error
	// Len reports the current number of entries
	Len() int
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database
type SQLiteStore struct {
	db     *sql.DB
	bus    eventbus.EventBus
	syncer Syncer
	log    zerolog.Logger
}

// Open opens (creating if necessary) the history database in dataDir
func Open(dataDir string, bus eventbus.EventBus, syncer Syncer, log zerolog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, "sessions.db"))
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	store, err := newStore(db, bus, syncer, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// OpenInMemory opens a throwaway in-memory store
func OpenInMemory(bus eventbus.EventBus, syncer Syncer, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory db: %w", err)
	}
	return newStore(db, bus, syncer, log)
}

func newStore(db *sql.DB, bus eventbus.EventBus, syncer Syncer, log zerolog.Logger) (*SQLiteStore, error) {
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id              INTEGER NOT NULL,
			session_id      TEXT NOT NULL,
			full_message    TEXT NOT NULL,
			clipped_message TEXT NOT NULL,
			url             TEXT NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &SQLiteStore{db: db, bus: bus, syncer: syncer, log: log}, nil
}

// NewEntry builds a history entry for a completed message search
func NewEntry(sessionID, fullMessage, url string) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:             time.Now().UnixMilli(),
		SessionID:      sessionID,
		FullMessage:    fullMessage,
		ClippedMessage: Clip(fullMessage),
		URL:            url,
	}
}

// Clip truncates a message to the display length, appending an ellipsis
// when anything was cut
func Clip(message string) string {
	runes := []rune(message)
	if len(runes) <= clipLength {
		return message
	}
	return string(runes[:clipLength]) + "..."
}

// List returns all entries most-recent-first
func (s *SQLiteStore) List() []domain.HistoryEntry {
	rows, err := s.db.Query(`
		SELECT id, session_id, full_message, clipped_message, url
		FROM sessions ORDER BY rowid DESC
	`)
	if err != nil {
		s.log.Error().Err(err).Msg("history read failed, degrading to empty list")
		return nil
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.FullMessage, &e.ClippedMessage, &e.URL); err != nil {
			s.log.Error().Err(err).Msg("history row scan failed, degrading to empty list")
			return nil
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		s.log.Error().Err(err).Msg("history iteration failed, degrading to empty list")
		return nil
	}
	return entries
}

// Len reports the current number of entries
func (s *SQLiteStore) Len() int {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		s.log.Error().Err(err).Msg("history count failed")
		return 0
	}
	return n
}

// Add inserts the entry at the head, deduplicated by full message and
// capped at MaxEntries. The whole mutation is one transaction. On success
// it kicks off a fire-and-forget backend sync and publishes a change event.
func (s *SQLiteStore) Add(entry domain.HistoryEntry) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin add: %w", err)
	}
	defer tx.Rollback()

	var dup int
	if err := tx.QueryRow(
		"SELECT COUNT(*) FROM sessions WHERE full_message = ?", entry.FullMessage,
	).Scan(&dup); err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if dup > 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
		INSERT INTO sessions (id, session_id, full_message, clipped_message, url)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.FullMessage, entry.ClippedMessage, entry.URL); err != nil {
		return false, fmt.Errorf("insert entry: %w", err)
	}

	// Evict from the tail past the cap
	if _, err := tx.Exec(`
		DELETE FROM sessions WHERE rowid NOT IN (
			SELECT rowid FROM sessions ORDER BY rowid DESC LIMIT ?
		)
	`, MaxEntries); err != nil {
		return false, fmt.Errorf("evict overflow: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit add: %w", err)
	}

	s.syncInBackground(entry)

	if s.bus != nil {
		s.bus.Publish(eventbus.HistoryChangedEvent{Entry: entry, Count: s.Len()})
	}
	return true, nil
}

// Clear erases all entries in one statement
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	if s.bus != nil {
		s.bus.Publish(eventbus.HistoryClearedEvent{})
	}
	return nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// syncInBackground replicates the entry to the backend without blocking
// the caller. Failure is logged and swallowed; the local mutation stands.
func (s *SQLiteStore) syncInBackground(entry domain.HistoryEntry) {
	if s.syncer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		if err := s.syncer.UpdateSession(ctx, entry); err != nil {
			s.log.Error().Err(err).Str("session_id", entry.SessionID).Msg("background sync failed")
			if s.bus != nil {
				s.bus.Publish(eventbus.SyncFailedEvent{SessionID: entry.SessionID, Err: err})
			}
		}
	}()
}
