package store

import (
	"database/sql"
	"time"
)

// Event represents one emitted control action.
type Event struct {
	ID        int64
	SessionID string
	Action    string
	RawKind   string
	Angle     *float64
	CreatedAt time.Time
}

// EventRepository provides access to the emitted-event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts an emitted action into the event log.
func (r *EventRepository) Record(e *Event) error {
	e.CreatedAt = time.Now()

	var angle interface{}
	if e.Angle != nil {
		angle = *e.Angle
	}

	res, err := r.db.Exec(
		`INSERT INTO events (session_id, action, raw_kind, angle, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.Action, e.RawKind, angle, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	e.ID, err = res.LastInsertId()
	return err
}

// ListRecent returns the most recent events, newest first.
func (r *EventRepository) ListRecent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, session_id, action, raw_kind, angle, created_at
		 FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListBySession returns all events for a session in emission order.
func (r *EventRepository) ListBySession(sessionID string) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, action, raw_kind, angle, created_at
		 FROM events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountByAction returns how many times each action was emitted in a session.
func (r *EventRepository) CountByAction(sessionID string) (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT action, COUNT(*) FROM events WHERE session_id = ? GROUP BY action`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		counts[action] = count
	}

	return counts, rows.Err()
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var angle sql.NullFloat64

		if err := rows.Scan(&e.ID, &e.SessionID, &e.Action, &e.RawKind, &angle, &e.CreatedAt); err != nil {
			return nil, err
		}
		if angle.Valid {
			e.Angle = &angle.Float64
		}

		events = append(events, e)
	}

	return events, rows.Err()
}
