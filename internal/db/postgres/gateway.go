// Package postgres implements db.Gateway on top of sqlx with either the pgx or lib/pq driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver

	"github.com/kailas-cloud/talentbridge/internal/db"
)

// Compile-time check: Gateway implements db.Gateway.
var _ db.Gateway = (*Gateway)(nil)

// Supported database/sql driver names.
const (
	DriverPgx = "pgx"
	DriverPQ  = "postgres"
)

// Config holds connection parameters.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Gateway is a read-only db.Gateway over a Postgres connection pool.
type Gateway struct {
	db *sqlx.DB
}

// Open creates the connection pool. It does not wait for the server; see WaitForReady.
func Open(cfg Config) (*Gateway, error) {
	switch cfg.Driver {
	case DriverPgx, DriverPQ:
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	conn, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return &Gateway{db: conn}, nil
}

// New wraps an existing sqlx handle.
func New(conn *sqlx.DB) *Gateway {
	return &Gateway{db: conn}
}

// DB exposes the underlying *sql.DB for migrations.
func (g *Gateway) DB() *sql.DB { return g.db.DB }

// Ping checks connectivity.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Select runs q and scans every row into dest.
func (g *Gateway) Select(ctx context.Context, dest any, q db.Query) error {
	if err := g.db.SelectContext(ctx, dest, q.SQL, q.Args...); err != nil {
		return &db.Error{Op: db.OpSelect, Err: err}
	}
	return nil
}

// Get runs q and scans the single resulting row into dest.
func (g *Gateway) Get(ctx context.Context, dest any, q db.Query) error {
	if err := g.db.GetContext(ctx, dest, q.SQL, q.Args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return db.ErrNoRows
		}
		return &db.Error{Op: db.OpGet, Err: err}
	}
	return nil
}

// Close releases the pool.
func (g *Gateway) Close() error {
	if err := g.db.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (g *Gateway) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := g.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
