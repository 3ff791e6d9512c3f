/*
Package store contains the persistence layer: hand-written queries over the
pgx connection pool for users, rooms, and the per-room shape log.

Callers classify failures with db.IsNotFound and db.IsUniqueViolation;
everything else is a storage error.
*/
package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store executes all SQL queries against the shared connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
