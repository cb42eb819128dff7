package main

import (
	"database/sql"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Event types for the analytics journal. Only lifecycle and combat
// outcomes are journaled; per-tick events would be far too chatty.
const (
	EvtPlayerJoin    = "player_join"
	EvtPlayerLeave   = "player_leave"
	EvtPlayerKill    = "player_kill"
	EvtPlayerEvicted = "player_evicted"
)

// AnalyticsEvent represents a single trackable event
type AnalyticsEvent struct {
	Type      string
	PlayerID  string
	Detail    string
	Timestamp time.Time
}

// Analytics journals server events to sqlite with batched background
// writes. All methods are safe on a nil receiver so the simulation can
// track unconditionally whether or not the journal is enabled.
type Analytics struct {
	db     *sql.DB
	events chan AnalyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup
	log    *zap.Logger
}

// OpenAnalytics opens (or creates) the journal database and starts the
// background writer
func OpenAnalytics(path string, log *zap.Logger) (*Analytics, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL mode so journal writes never stall behind readers
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		player_id TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
	`); err != nil {
		db.Close()
		return nil, err
	}

	a := &Analytics{
		db:     db,
		events: make(chan AnalyticsEvent, 1024),
		stop:   make(chan struct{}),
		log:    log,
	}
	a.wg.Add(1)
	go a.writer()
	return a, nil
}

// Track enqueues an event for async persistence (non-blocking)
func (a *Analytics) Track(evtType, playerID, detail string) {
	if a == nil {
		return
	}
	select {
	case a.events <- AnalyticsEvent{
		Type:      evtType,
		PlayerID:  playerID,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full — drop the event rather than blocking the game loop
	}
}

// Stop flushes pending events and shuts the writer down
func (a *Analytics) Stop() {
	if a == nil {
		return
	}
	close(a.stop)
	a.wg.Wait()
	a.db.Close()
}

// writer is the background goroutine that batches and writes events
func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, 64)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			if len(batch) >= 50 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
			// Drain remaining events
			close(a.events)
			for evt := range a.events {
				batch = append(batch, evt)
			}
			if len(batch) > 0 {
				a.flush(batch)
			}
			return
		}
	}
}

// flush writes a batch of events to the database
func (a *Analytics) flush(events []AnalyticsEvent) {
	tx, err := a.db.Begin()
	if err != nil {
		a.log.Warn("analytics begin tx", zap.Error(err))
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO events (event_type, player_id, detail, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		a.log.Warn("analytics prepare", zap.Error(err))
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		if _, err := stmt.Exec(evt.Type, evt.PlayerID, evt.Detail, evt.Timestamp.Format(time.RFC3339)); err != nil {
			a.log.Warn("analytics insert", zap.Error(err))
		}
	}
	tx.Commit()
}

// EventCounts returns counts of each event type for the last N days
func (a *Analytics) EventCounts(days int) (map[string]int, error) {
	if a == nil {
		return nil, nil
	}
	rows, err := a.db.Query(`
		SELECT event_type, COUNT(*) FROM events
		WHERE created_at >= date('now', '-' || ? || ' days')
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			continue
		}
		result[evtType] = count
	}
	return result, rows.Err()
}
