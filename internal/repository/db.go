// Package repository persists the domain model over database/sql.
// SQLite serves the single-node default; a postgres DSN switches to the
// pgx stdlib driver without code changes above this package.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/docuforge/docuforge/internal/common"
)

type DB struct {
	sql    *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects using the driver implied by the DSN scheme, applies
// pool limits, and ensures the schema exists.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = "pgx"
	}
	logger.Info("connecting to database", "driver", driver)

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnLifetime)

	d := &DB{sql: db, driver: driver, logger: logger}
	if err := d.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("successfully connected to database")
	return d, nil
}

// Close closes the connection pool gracefully.
func (d *DB) Close() {
	d.logger.Info("closing database connections")
	if err := d.sql.Close(); err != nil {
		d.logger.Error("failed to close database", "error", err)
	}
}

// HealthCheck pings with a bounded timeout to catch DSN issues early.
func (d *DB) HealthCheck(ctx context.Context, cfg common.DatabaseConfig) error {
	if cfg.HealthTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.HealthTimeout)
		defer cancel()
	}
	return d.sql.PingContext(ctx)
}

// rebind converts ?-placeholders to the $N form postgres expects.
// Queries in this package are written in the ? dialect.
func (d *DB) rebind(query string) string {
	if d.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) ensureSchema(ctx context.Context) error {
	ddl := schemaSQLite
	if d.driver == "pgx" {
		ddl = schemaPostgres
	}
	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec ddl: %w", err)
		}
	}
	return nil
}
