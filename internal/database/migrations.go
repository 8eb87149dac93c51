package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createExtension,
		createUsersTable,
		createEventsTable,
		createSeatsTable,
		createOrdersTable,
		createIdempotencyKeysTable,
		createSeatsEventIndex,
		createOrdersCreatedIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createExtension = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(500) NOT NULL,
    starts_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createSeatsTable = `
CREATE TABLE IF NOT EXISTS seats (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    event_id UUID NOT NULL REFERENCES events(id),
    label VARCHAR(50) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'available',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    UNIQUE(event_id, label),
    CHECK (status IN ('available', 'reserved', 'sold'))
);`

// Order ids are supplied by the application, never defaulted: the id must be
// known before the row exists.
const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(id),
    seat_id UUID NOT NULL REFERENCES seats(id),
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CHECK (status IN ('pending', 'confirmed', 'cancelled'))
);`

// The primary key on key is the uniqueness constraint the reservation
// transaction relies on for one-token-one-order semantics.
const createIdempotencyKeysTable = `
CREATE TABLE IF NOT EXISTS idempotency_keys (
    key VARCHAR(255) PRIMARY KEY,
    order_id UUID NOT NULL REFERENCES orders(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createSeatsEventIndex = `
CREATE INDEX IF NOT EXISTS seats_event_id_idx ON seats (event_id, label);`

const createOrdersCreatedIndex = `
CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC);`
