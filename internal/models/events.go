package models

import "time"

// NATS Event Types
const (
	EventOrderCreated = "order.created"
	EventUserCreated  = "user.created"
)

// OrderCreatedEvent is published after a reservation transaction commits.
// Replays never publish it: the seat flipped exactly once.
type OrderCreatedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	SeatID    string    `json:"seat_id"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}

// UserCreatedEvent represents a user creation event
type UserCreatedEvent struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}
