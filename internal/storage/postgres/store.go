package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/idlerpg/internal/game/engine"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so every
// repository query runs unchanged inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements engine.Store on PostgreSQL. Lookups that find no row
// return engine.ErrNotFound; infrastructure failures return
// engine.ErrTransient, both wrapped with query context.
type Store struct {
	db   querier
	pool *pgxpool.Pool // nil inside a transaction
}

// NewStore creates a Store backed by the given pool.
//
// Precondition: pool must be a valid, open connection pool.
func NewStore(pool *Pool) *Store {
	return &Store{db: pool.DB(), pool: pool.DB()}
}

// WithTx runs fn against a transactional Store. The transaction commits when
// fn returns nil and rolls back otherwise. Nested calls reuse the enclosing
// transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx engine.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return transient("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&Store{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return transient("committing transaction", err)
	}
	return nil
}

// transient wraps an infrastructure failure with the engine's transient
// sentinel so callers can distinguish it from domain errors.
func transient(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, engine.ErrTransient, err)
}

// notFound wraps a missing-row result with the engine's not-found sentinel.
func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, engine.ErrNotFound)
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
