package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ErrUnreachable wraps connect-time failures so callers can tell an
// unreachable store apart from a failing statement.
var ErrUnreachable = errors.New("store unreachable")

type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// Open opens a pooled handle for the configured driver and verifies
// liveness with a single bounded ping. It never retries; callers that
// want retries wrap Open themselves.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = sql.Open("pgx", cfg.DSN)
	case "sqlite":
		db, err = sql.Open("sqlite", sqliteDSN(cfg.DSN))
	default:
		return nil, fmt.Errorf("database: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: %w: %v", ErrUnreachable, err)
	}

	return db, nil
}

// sqliteDSN carries the pragmas in the DSN because a pragma executed
// with Exec binds to a single pooled connection, not all of them.
func sqliteDSN(dsn string) string {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragmas
	}
	return dsn + "?" + pragmas
}
