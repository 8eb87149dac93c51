package models

import (
	"time"
)

// Seat statuses. Only the reservation transaction moves a seat from
// available to reserved; reserved to sold belongs to fulfillment.
const (
	SeatAvailable = "available"
	SeatReserved  = "reserved"
	SeatSold      = "sold"
)

// Order statuses. The API only ever creates pending orders.
const (
	OrderPending = "pending"
)

// User represents a user in the system
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Event represents a football match tickets are sold for
type Event struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	StartsAt  time.Time `json:"starts_at" db:"starts_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Seat represents a single seat of an event
type Seat struct {
	ID        string    `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	Label     string    `json:"label" db:"label"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Order represents a reservation of exactly one seat by one user.
// The ID is generated by the API before the row exists, never by Postgres.
type Order struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	SeatID    string    `json:"seat_id" db:"seat_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IdempotencyKey maps a client-supplied token to the order it produced.
// Rows are written at most once per token and never updated or deleted.
type IdempotencyKey struct {
	Key       string    `json:"key" db:"key"`
	OrderID   string    `json:"order_id" db:"order_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
