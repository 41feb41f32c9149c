// Package store persists audit history to SQLite. Writes are batched and
// asynchronous so a slow disk never delays an audit response; reads back the
// recent history for the /logs/audits endpoint.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

// Schema for the audits table. Applied by Open().
const Schema = `
CREATE TABLE IF NOT EXISTS audits (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL,
	site_profile TEXT NOT NULL,
	overall_score INTEGER NOT NULL,
	grade TEXT NOT NULL,
	severe_count INTEGER NOT NULL,
	moderate_count INTEGER NOT NULL,
	casual_count INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audits_created ON audits(created_at);
CREATE INDEX IF NOT EXISTS idx_audits_url ON audits(url);
`

// Record is one row of audit history.
type Record struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	SiteProfile   string `json:"site_profile"`
	OverallScore  int    `json:"overall_score"`
	Grade         string `json:"grade"`
	SevereCount   int    `json:"severe_count"`
	ModerateCount int    `json:"moderate_count"`
	CasualCount   int    `json:"casual_count"`
	DurationMs    int64  `json:"duration_ms"`
	CreatedAt     int64  `json:"created_at"`
}

// Store persists audit records to a SQLite database asynchronously.
type Store struct {
	db   *sql.DB
	ch   chan *Record
	done chan struct{}
	once sync.Once
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	// SQLite serializes writers anyway; a single connection avoids lock errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying audit schema: %w", err)
	}

	s := &Store{
		db:   db,
		ch:   make(chan *Record, 256),
		done: make(chan struct{}),
	}
	go s.flushLoop()
	return s, nil
}

// RecordAudit queues a finished audit for async persistence.
// Non-blocking; drops if the buffer is full.
func (s *Store) RecordAudit(report *core.AuditReport, duration time.Duration) {
	rec := &Record{
		ID:            uuid.NewString(),
		URL:           report.URL,
		SiteProfile:   report.SiteProfile,
		OverallScore:  report.OverallScore,
		Grade:         report.Grade,
		SevereCount:   report.SevereCount,
		ModerateCount: report.ModerateCount,
		CasualCount:   report.CasualCount,
		DurationMs:    duration.Milliseconds(),
		CreatedAt:     time.Now().Unix(),
	}
	select {
	case s.ch <- rec:
	default:
		// buffer full, drop rather than block the audit path
	}
}

// Recent returns the most recent audit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, site_profile, overall_score, grade,
		       severe_count, moderate_count, casual_count, duration_ms, created_at
		FROM audits ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit history: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.URL, &r.SiteProfile, &r.OverallScore, &r.Grade,
			&r.SevereCount, &r.ModerateCount, &r.CasualCount, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close drains the buffer, stops the flush goroutine, and closes the database.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.ch)
		<-s.done
	})
	return s.db.Close()
}

func (s *Store) flushLoop() {
	defer close(s.done)

	batch := make([]*Record, 0, 32)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case rec, ok := <-s.ch:
			if !ok {
				s.flushBatch(batch)
				return
			}
			batch = append(batch, rec)
			if len(batch) >= 32 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *Store) flushBatch(batch []*Record) {
	if len(batch) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("audit store: begin tx", "error", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO audits
		(id, url, site_profile, overall_score, grade, severe_count, moderate_count, casual_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		slog.Error("audit store: prepare", "error", err)
		return
	}
	defer stmt.Close()

	for _, r := range batch {
		if _, err := stmt.Exec(r.ID, r.URL, r.SiteProfile, r.OverallScore, r.Grade,
			r.SevereCount, r.ModerateCount, r.CasualCount, r.DurationMs, r.CreatedAt); err != nil {
			slog.Error("audit store: insert", "error", err)
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("audit store: commit", "error", err)
	}
}
