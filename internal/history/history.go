// Package history keeps an audit trail of conversions in MySQL.
package history

import (
	"context"
	"database/sql"
	"time"
)

const Table = "csv2json_runs"

// Execer is the part of *sql.DB the history writer needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Run describes one finished conversion.
type Run struct {
	Source     string
	Target     string
	Rows       int
	Mismatched int
	Bytes      int
	StartedAt  time.Time
	Duration   time.Duration
}

// EnsureTable creates the history table if it does not exist yet.
func EnsureTable(ctx context.Context, db Execer) error {
	const q = `
		CREATE TABLE IF NOT EXISTS ` + Table + ` (
			id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			source      VARCHAR(1024) NOT NULL,
			target      VARCHAR(1024) NOT NULL,
			rows_out    INT UNSIGNED NOT NULL,
			mismatched  INT UNSIGNED NOT NULL,
			bytes_out   BIGINT UNSIGNED NOT NULL,
			started_at  DATETIME(3) NOT NULL,
			duration_ms BIGINT UNSIGNED NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
	`
	_, err := db.ExecContext(ctx, q)
	return err
}

// Record inserts r. started_at is stored in UTC.
func Record(ctx context.Context, db Execer, r Run) error {
	const q = `
		INSERT INTO ` + Table + `
			(source, target, rows_out, mismatched, bytes_out, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, q,
		r.Source, r.Target, r.Rows, r.Mismatched, r.Bytes,
		r.StartedAt.UTC(), r.Duration.Milliseconds(),
	)
	return err
}
