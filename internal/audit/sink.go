// AngelaMos | 2026
// sink.go

package audit

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/campaignhq/campaign-backend/internal/auth"
)

// Sink mirrors the manager's in-memory login-attempt log to a SQL table.
// The driver is either "sqlite" (local file) or "pgx" (Postgres).
type Sink struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS login_attempts (
	email      TEXT NOT NULL,
	attempted  TIMESTAMP NOT NULL,
	success    BOOLEAN NOT NULL
)`

func NewSink(ctx context.Context, driver, dsn string) (*Sink, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect audit db: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on setup failure
		return nil, fmt.Errorf("ensure audit schema: %w", err)
	}

	return &Sink{db: db}, nil
}

func (s *Sink) RecordAttempt(
	ctx context.Context,
	attempt auth.LoginAttempt,
) error {
	query := s.db.Rebind(`
		INSERT INTO login_attempts (email, attempted, success)
		VALUES (?, ?, ?)`)

	if _, err := s.db.ExecContext(
		ctx,
		query,
		attempt.Email,
		attempt.Timestamp,
		attempt.Success,
	); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	return nil
}

type attemptRow struct {
	Email     string    `db:"email"`
	Attempted time.Time `db:"attempted"`
	Success   bool      `db:"success"`
}

// Recent returns the newest attempts, most recent first.
func (s *Sink) Recent(ctx context.Context, limit int) ([]auth.LoginAttempt, error) {
	if limit <= 0 {
		limit = 100
	}

	query := s.db.Rebind(`
		SELECT email, attempted, success
		FROM login_attempts
		ORDER BY attempted DESC
		LIMIT ?`)

	var rows []attemptRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	attempts := make([]auth.LoginAttempt, 0, len(rows))
	for _, row := range rows {
		attempts = append(attempts, auth.LoginAttempt{
			Email:     row.Email,
			Timestamp: row.Attempted,
			Success:   row.Success,
		})
	}

	return attempts, nil
}

func (s *Sink) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("audit db ping failed: %w", err)
	}

	return nil
}

func (s *Sink) Close() error {
	return s.db.Close()
}

var _ auth.AttemptSink = (*Sink)(nil)
