// Package pgproc calls the admin reporting functions directly on Postgres,
// bypassing the REST gateway.
package pgproc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RowQuerier is the subset of pgxpool.Pool the caller needs.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Caller runs a set-returning function and aggregates its rows into a JSON array.
type Caller struct {
	db     RowQuerier
	schema string
}

// Option customizes a Caller.
type Option func(*Caller)

// WithSchema sets the schema the functions live in (default "public").
func WithSchema(schema string) Option {
	return func(c *Caller) {
		if s := strings.TrimSpace(schema); s != "" {
			c.schema = s
		}
	}
}

// New wraps a pool or any RowQuerier.
func New(db RowQuerier, opts ...Option) *Caller {
	c := &Caller{db: db, schema: "public"}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Connect opens a pgx pool for url and verifies it with a ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("pgproc: parse database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgproc: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgproc: ping: %w", err)
	}
	return pool, nil
}

// Query returns the SQL statement used for a procedure.
func (c *Caller) Query(procedure string) string {
	ident := pgx.Identifier{c.schema, procedure}.Sanitize()
	return "SELECT coalesce(json_agg(t), '[]'::json) FROM " + ident + "() AS t"
}

// Call implements admin.ProcedureCaller.
func (c *Caller) Call(ctx context.Context, procedure string) (json.RawMessage, error) {
	procedure = strings.TrimSpace(procedure)
	if procedure == "" {
		return nil, fmt.Errorf("pgproc: procedure name is required")
	}
	var payload []byte
	if err := c.db.QueryRow(ctx, c.Query(procedure)).Scan(&payload); err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}
