package journal

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/ember/foundation/core/error"
)

// Store defines the interface for journal persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (*Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/ember.db",
	}
}

// Open creates or opens the journal database at cfg.Path
func Open(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultConfig()
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "journal.Open").WithDetail("path", dir)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, storageError(err, "failed to open database", "journal.Open").WithDetail("path", cfg.Path)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "journal.Open").WithDetail("path", cfg.Path)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parses (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		run_id TEXT,
		source TEXT NOT NULL,
		sha256 TEXT NOT NULL,
		size INTEGER NOT NULL,
		success INTEGER NOT NULL,
		code TEXT,
		error TEXT,
		line INTEGER NOT NULL DEFAULT 0,
		col INTEGER NOT NULL DEFAULT 0,
		nodes INTEGER NOT NULL DEFAULT 0,
		duration INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_parses_timestamp ON parses(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_parses_source ON parses(source);
	CREATE INDEX IF NOT EXISTS idx_parses_sha256 ON parses(sha256);
	CREATE INDEX IF NOT EXISTS idx_parses_success ON parses(success);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores entry, assigning an ID and timestamp when missing
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Source == "" {
		return mdwerror.New("entry has no source name").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("journal.Record")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parses (id, timestamp, run_id, source, sha256, size, success, code, error, line, col, nodes, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp.UnixNano(), nullString(entry.RunID), entry.Source, entry.Hash, entry.Size,
		entry.Success, nullString(entry.Code), nullString(entry.Error), entry.Line, entry.Column,
		entry.Nodes, int64(entry.Duration))

	if err != nil {
		return storageError(err, "failed to insert entry", "journal.Record").WithDetail("id", entry.ID)
	}

	return nil
}

// Query retrieves entries matching filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, run_id, source, sha256, size, success, code, error, line, col, nodes, duration
		FROM parses WHERE 1=1`
	var args []interface{}

	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.Hash != "" {
		query += " AND sha256 = ?"
		args = append(args, filter.Hash)
	}
	if filter.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, filter.RunID)
	}
	if filter.OnlyFailed {
		query += " AND success = 0"
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UnixNano())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query entries", "journal.Query")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var timestamp, duration int64
		var runID, code, errMsg sql.NullString

		if err := rows.Scan(&entry.ID, &timestamp, &runID, &entry.Source, &entry.Hash, &entry.Size,
			&entry.Success, &code, &errMsg, &entry.Line, &entry.Column, &entry.Nodes, &duration); err != nil {
			return nil, storageError(err, "failed to scan entry", "journal.Query")
		}

		entry.Timestamp = time.Unix(0, timestamp)
		entry.Duration = time.Duration(duration)
		entry.RunID = runID.String
		entry.Code = code.String
		entry.Error = errMsg.String

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to read entries", "journal.Query")
	}

	return entries, nil
}

// Stats returns journal statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByCode: make(map[string]int64)}

	var last sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(success = 0), 0), COUNT(DISTINCT source), MAX(timestamp)
		FROM parses
	`).Scan(&stats.Total, &stats.Failed, &stats.Sources, &last)
	if err != nil {
		return nil, storageError(err, "failed to read statistics", "journal.Stats")
	}
	if last.Valid {
		stats.LastEntry = time.Unix(0, last.Int64)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT code, COUNT(*) FROM parses WHERE success = 0 GROUP BY code`)
	if err != nil {
		return nil, storageError(err, "failed to read statistics", "journal.Stats")
	}
	defer rows.Close()

	for rows.Next() {
		var code sql.NullString
		var count int64
		if err := rows.Scan(&code, &count); err != nil {
			return nil, storageError(err, "failed to scan statistics", "journal.Stats")
		}
		key := code.String
		if key == "" {
			key = string(mdwerror.CodeUnknown)
		}
		stats.ByCode[key] += count
	}

	return stats, rows.Err()
}

// Prune removes entries older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM parses WHERE timestamp < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, storageError(err, "failed to prune entries", "journal.Prune")
	}
	deleted, _ := result.RowsAffected()

	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func storageError(err error, message, operation string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorageError).
		WithOperation(operation)
}
