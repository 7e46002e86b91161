// Package db implements the per-request connection lifecycle over a single
// PostgreSQL handle. Each request that touches the store acquires one
// dedicated connection and releases it as soon as its query completes; no
// connection is shared across requests.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"todoapi/internal/common"
	"todoapi/internal/logging"
	"todoapi/internal/server/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Provider hands out dedicated store connections, one per request.
type Provider struct {
	db     *sql.DB
	logger logging.Logger
}

// NewPostgresProvider opens the underlying PostgreSQL handle. The backend
// is not contacted here: a store that is down surfaces per request as
// common.ErrStoreUnavailable instead of failing startup.
func NewPostgresProvider(dsn string, logger logging.Logger) (*Provider, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	return NewProvider(sqlDB, logger), nil
}

// NewProvider wraps an already opened handle. Tests use it to run the
// provider over an in-memory database.
func NewProvider(sqlDB *sql.DB, logger logging.Logger) *Provider {
	return &Provider{db: sqlDB, logger: logger.With("module", "db_provider")}
}

// Acquire returns a connection dedicated to the calling request. Failures
// to reach the backend are reported as common.ErrStoreUnavailable.
func (p *Provider) Acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return conn, nil
}

// Release returns the request's connection. Close failures are logged and
// swallowed so they cannot override an already-computed response.
func (p *Provider) Release(ctx context.Context, conn *sql.Conn) {
	if err := conn.Close(); err != nil {
		p.logger.Error(ctx, "error releasing connection", "error", err)
	}
}

// RunMigrations sets up goose with the embedded migrations and applies
// them against the underlying handle.
func (p *Provider) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, p.db, ".")
}

// Close shuts down the underlying handle.
func (p *Provider) Close() error {
	return p.db.Close()
}
