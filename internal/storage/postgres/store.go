package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ali-azimo/house-aj/internal/storage"
)

// Compile-time checks that Store satisfies the storage interfaces.
var (
	_ storage.UserStore  = (*Store)(nil)
	_ storage.HouseStore = (*Store)(nil)
	_ storage.LikeStore  = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users, houses, and likes.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'user',
			avatar TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS houses (
			id BIGSERIAL PRIMARY KEY,
			owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			regular_price NUMERIC(12,2) NOT NULL CHECK (regular_price >= 0),
			discount_price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (discount_price >= 0),
			bathroom INT NOT NULL CHECK (bathroom >= 0),
			bedroom INT NOT NULL CHECK (bedroom >= 0),
			kitchen INT NOT NULL CHECK (kitchen >= 0),
			living_room INT NOT NULL DEFAULT 0 CHECK (living_room >= 0),
			parking BOOLEAN NOT NULL DEFAULT FALSE,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			type TEXT NOT NULL CHECK (type IN ('sale', 'rent')),
			offer BOOLEAN NOT NULL DEFAULT FALSE,
			image_urls TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS houses_owner_idx ON houses (owner_id);`,
		`CREATE INDEX IF NOT EXISTS houses_type_idx ON houses (type);`,
		`CREATE INDEX IF NOT EXISTS houses_created_at_idx ON houses (created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS likes (
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			house_id BIGINT NOT NULL REFERENCES houses(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, house_id)
		);`,
		`CREATE INDEX IF NOT EXISTS likes_house_idx ON likes (house_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
