package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// KeyEvent is one recorded press or release command.
type KeyEvent struct {
	ID   string
	Key  string
	Kind string
	At   time.Time
}

// EventRepository provides access to the key event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record appends one event to the log.
func (r *EventRepository) Record(key, kind string, at time.Time) error {
	_, err := r.db.Exec(
		`INSERT INTO key_events (id, key, kind, at_ms) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), key, kind, at.UnixMilli(),
	)
	return err
}

// Recent returns the most recent n events, newest first.
func (r *EventRepository) Recent(n int) ([]KeyEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, key, kind, at_ms FROM key_events ORDER BY at_ms DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []KeyEvent
	for rows.Next() {
		var ev KeyEvent
		var atMs int64
		if err := rows.Scan(&ev.ID, &ev.Key, &ev.Kind, &atMs); err != nil {
			return nil, err
		}
		ev.At = time.UnixMilli(atMs)
		events = append(events, ev)
	}

	return events, rows.Err()
}
