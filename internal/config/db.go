package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"

	appCtx "github.com/baechuer/peoplehub/internal/pkg/context"
)

// NewDB opens a pgx-backed *sql.DB and pings it. With debug set every statement is logged at
// debug level through the request logger; bound arguments are never logged.
func NewDB(dsn string, debug bool) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty DATABASE_URL")
	}
	pgCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if debug {
		pgCfg.Tracer = &tracelog.TraceLog{Logger: tracelog.LoggerFunc(logQuery), LogLevel: tracelog.LogLevelDebug}
	}

	db := stdlib.OpenDB(*pgCfg)
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres %s:%d: %w", pgCfg.Host, pgCfg.Port, err)
	}

	appCtx.Logger(ctx).Debug().
		Str("host", pgCfg.Host).
		Str("db", pgCfg.Database).
		Str("user", pgCfg.User).
		Msg("postgres connected")
	return db, nil
}

func logQuery(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	delete(data, "args")
	ev := appCtx.Logger(ctx).Debug()
	if level <= tracelog.LogLevelError {
		ev = appCtx.Logger(ctx).Warn()
	}
	ev.Fields(data).Msg("pgx: " + msg)
}
