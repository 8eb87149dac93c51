package errors

import "errors"

var ErrSeatNotFound = errors.New("seat not found")
var ErrSeatUnavailable = errors.New("seat not available")
var ErrEventNotFound = errors.New("event not found")
var ErrOrderNotFound = errors.New("order not found")

// ErrIdempotencyConflict is returned when the idempotency insert hits the
// uniqueness constraint twice in a row. The fixed lock ordering should make
// this unreachable; it guards against isolation-level surprises.
var ErrIdempotencyConflict = errors.New("idempotency key conflict")
