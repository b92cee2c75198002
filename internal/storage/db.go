package storage

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/darionTest/simplenight/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			environment TEXT NOT NULL,
			base_url TEXT NOT NULL,
			category TEXT NOT NULL,
			city TEXT NOT NULL,
			check_in TEXT NOT NULL DEFAULT '',
			check_out TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			rating REAL NOT NULL DEFAULT 0,
			passed INTEGER NOT NULL DEFAULT 0,
			failure TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	// Added after the first release; the error is ignored when the column already exists
	_, _ = db.conn.Exec(`ALTER TABLE runs ADD COLUMN screenshot TEXT NOT NULL DEFAULT ''`)

	return nil
}

const runColumns = "id, environment, base_url, category, city, check_in, check_out, price, rating, passed, failure, screenshot, started_at, finished_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	var r models.Run
	if err := row.Scan(
		&r.ID, &r.Environment, &r.BaseURL, &r.Category, &r.City, &r.CheckIn, &r.CheckOut,
		&r.Price, &r.Rating, &r.Passed, &r.Failure, &r.Screenshot, &r.StartedAt, &r.FinishedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRun inserts a run. An empty ID is replaced by a new UUID and a zero
// finish time by the current time.
func (db *DB) CreateRun(r *models.Run) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = r.FinishedAt
	}
	_, err := db.conn.Exec(
		"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.Environment, r.BaseURL, r.Category, r.City, r.CheckIn, r.CheckOut,
		r.Price, r.Rating, r.Passed, r.Failure, r.Screenshot, dbTime(r.StartedAt), dbTime(r.FinishedAt),
	)
	return err
}

// GetRun retrieves a single run by ID.
func (db *DB) GetRun(id string) (*models.Run, error) {
	return scanRun(db.conn.QueryRow("SELECT "+runColumns+" FROM runs WHERE id = ?", id))
}

// ListRuns retrieves the most recent runs, newest first. A limit of zero or less returns all runs.
func (db *DB) ListRuns(limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}

	return runs, rows.Err()
}

// GetEnvironmentStats aggregates runs per environment, ordered by environment name.
func (db *DB) GetEnvironmentStats() ([]models.EnvironmentStats, error) {
	rows, err := db.conn.Query(`
		SELECT environment, COUNT(*), COALESCE(SUM(passed), 0),
			AVG(price), MIN(price), MAX(price), AVG(rating), MAX(started_at)
		FROM runs
		GROUP BY environment
		ORDER BY environment
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.EnvironmentStats
	for rows.Next() {
		var s models.EnvironmentStats
		var lastRun string
		if err := rows.Scan(&s.Environment, &s.Runs, &s.Passed, &s.AvgPrice, &s.MinPrice, &s.MaxPrice, &s.AvgRating, &lastRun); err != nil {
			return nil, err
		}
		s.LastRunAt = parseTimestamp(lastRun)
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// DeleteRunsBefore removes runs started before t and returns how many were removed.
func (db *DB) DeleteRunsBefore(t time.Time) (int64, error) {
	result, err := db.conn.Exec("DELETE FROM runs WHERE started_at < ?", dbTime(t))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// dbTime normalises t so stored timestamps sort and compare as text.
func dbTime(t time.Time) time.Time {
	return t.UTC().Round(0)
}

// timestampFormats are the layouts the sqlite driver writes time.Time values with.
var timestampFormats = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// parseTimestamp handles aggregate results, which lose the column's DATETIME type.
func parseTimestamp(s string) time.Time {
	if i := strings.Index(s, " m="); i >= 0 {
		s = s[:i]
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
