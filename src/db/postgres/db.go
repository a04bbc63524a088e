// Package postgres implements db.Store on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"

	"expensy-server/src/db"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ db.Store = (*Store)(nil)

// Connect applies migrations, opens a pool and pings it.
func Connect(ctx context.Context, url string) (*Store, error) {
	if err := db.MigratePostgres(url); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}
