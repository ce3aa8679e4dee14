package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"ReturnSentinel/internal/model"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while runs write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stats_snapshots (
			id            TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			symbol        TEXT,
			source        TEXT,
			price_count   INTEGER,
			return_count  INTEGER,
			mean          REAL,
			volatility    REAL,
			variance_mode TEXT,
			valid         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stats_ts ON stats_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS stats_returns (
			snapshot_id TEXT NOT NULL REFERENCES stats_snapshots(id),
			idx         INTEGER NOT NULL,
			value       REAL,
			PRIMARY KEY (snapshot_id, idx)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordStats writes the snapshot and its returns in one transaction.
func (r *SQLiteRecorder) RecordStats(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	st := snap.Stats
	if _, err := tx.Exec(`INSERT INTO stats_snapshots
		(id, timestamp, symbol, source, price_count, return_count, mean, volatility, variance_mode, valid)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		snap.ID, snap.Time.Unix(), snap.Symbol, snap.Source, snap.PriceCount,
		st.Count, st.Mean, st.Volatility, string(st.Mode), st.Valid(),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for i, v := range st.Returns {
		if _, err := tx.Exec(`INSERT INTO stats_returns (snapshot_id, idx, value) VALUES (?,?,?)`,
			snap.ID, i, v); err != nil {
			return fmt.Errorf("insert return %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Recent returns the latest snapshots, newest first. Returns are not loaded.
func (r *SQLiteRecorder) Recent(limit int) ([]Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, symbol, source, price_count,
		return_count, mean, volatility, variance_mode
		FROM stats_snapshots ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap Snapshot
			ts   int64
			mode string
		)
		st := &model.ReturnStats{}
		if err := rows.Scan(&snap.ID, &ts, &snap.Symbol, &snap.Source, &snap.PriceCount,
			&st.Count, &st.Mean, &st.Volatility, &mode); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.Time = time.Unix(ts, 0)
		st.Mode = model.VarianceMode(mode)
		snap.Stats = st
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
