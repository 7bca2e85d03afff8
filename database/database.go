package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is a global variable to hold the database connection pool.
var DB *pgxpool.Pool

// InitDB sets up the database connection pool and checks it is reachable.
func InitDB(ctx context.Context, databaseURL string) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	DB = pool
	log.Println("Successfully connected to the database")
	return nil
}

// GetDB returns the connection pool, nil when the server runs without a database.
func GetDB() *pgxpool.Pool {
	return DB
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
		DB = nil
		log.Println("Database connection pool closed")
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL,
    state         TEXT NOT NULL DEFAULT '',
    district      TEXT NOT NULL DEFAULT '',
    taluk         TEXT NOT NULL DEFAULT '',
    phone_number  TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS crops (
    id          TEXT PRIMARY KEY,
    farmer_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    farmer_name TEXT NOT NULL DEFAULT '',
    state       TEXT NOT NULL DEFAULT '',
    district    TEXT NOT NULL DEFAULT '',
    taluk       TEXT NOT NULL DEFAULT '',
    name        TEXT NOT NULL,
    image_url   TEXT NOT NULL DEFAULT '',
    price       DOUBLE PRECISION NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS crops_farmer_id_idx ON crops (farmer_id);
CREATE INDEX IF NOT EXISTS crops_state_idx ON crops (LOWER(state));
`

// Migrate creates the tables used by the stores when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
