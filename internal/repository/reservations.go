package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"matchday/internal/database"
	apperrors "matchday/internal/errors"
	"matchday/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ReservationRepository owns the seat-reservation transaction. All state
// shared between concurrent requests lives in Postgres; the repository holds
// nothing between calls, so conflicting requests are serialized entirely by
// row locks.
type ReservationRepository struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Reserve creates an order for the given seat exactly once per idempotency
// token. It returns the committed order and whether the call was a replay of
// an earlier token use.
//
// A uniqueness violation on the idempotency insert means a concurrent request
// with the same token committed between our idempotency read and our insert.
// The whole transaction is retried once; the retry finds the committed row and
// takes the replay path. A second violation is not expected under the lock
// ordering and surfaces as ErrIdempotencyConflict.
func (r *ReservationRepository) Reserve(ctx context.Context, userID, seatID, token string) (*models.Order, bool, error) {
	order, replay, err := r.reserveOnce(ctx, userID, seatID, token)
	if err != nil && isIdempotencyKeyConflict(err) {
		order, replay, err = r.reserveOnce(ctx, userID, seatID, token)
		if err != nil && isIdempotencyKeyConflict(err) {
			return nil, false, apperrors.ErrIdempotencyConflict
		}
	}
	return order, replay, err
}

// reserveOnce runs a single attempt as one transaction. Locks are always
// acquired in the same order: idempotency row first, seat row second.
func (r *ReservationRepository) reserveOnce(ctx context.Context, userID, seatID, token string) (*models.Order, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the idempotency row for the token, if any. A concurrent first use
	// of the same token blocks here until it commits or rolls back.
	var existingOrderID string
	err = tx.QueryRowContext(ctx,
		`SELECT order_id FROM idempotency_keys WHERE key = $1 FOR UPDATE`,
		token,
	).Scan(&existingOrderID)

	switch {
	case err == nil:
		// Replay: the token already produced an order. Read it and commit
		// without any writes.
		order, err := scanOrder(tx.QueryRowContext(ctx, selectOrderQuery, existingOrderID))
		if err != nil {
			return nil, false, fmt.Errorf("failed to load order for replayed token: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("failed to commit replay read: %w", err)
		}
		return order, true, nil
	case err != sql.ErrNoRows:
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}

	// Lock the seat row. The first transaction to get here wins the seat;
	// everyone after it sees status != available.
	var seatStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM seats WHERE id = $1 FOR UPDATE`,
		seatID,
	).Scan(&seatStatus)
	if err == sql.ErrNoRows {
		return nil, false, apperrors.ErrSeatNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to lock seat: %w", err)
	}
	if seatStatus != models.SeatAvailable {
		return nil, false, apperrors.ErrSeatUnavailable
	}

	// The order id is generated here, not by the database, so it is known
	// before the row exists and can be written into idempotency_keys below.
	orderID := uuid.New().String()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, seat_id, status) VALUES ($1, $2, $3, $4)`,
		orderID, userID, seatID, models.OrderPending,
	); err != nil {
		return nil, false, fmt.Errorf("failed to insert order: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE seats SET status = $1 WHERE id = $2`,
		models.SeatReserved, seatID,
	); err != nil {
		return nil, false, fmt.Errorf("failed to reserve seat: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO idempotency_keys (key, order_id) VALUES ($1, $2)`,
		token, orderID,
	); err != nil {
		// Surfaced unwrapped so Reserve can recognize the unique violation.
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit reservation: %w", err)
	}

	// Re-read the committed row for canonical stored values (created_at).
	order, err := scanOrder(r.db.QueryRowContext(ctx, selectOrderQuery, orderID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-read committed order: %w", err)
	}

	return order, false, nil
}

const selectOrderQuery = `
	SELECT id, user_id, seat_id, status, created_at
	FROM orders
	WHERE id = $1`

func scanOrder(row *sql.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.SeatID,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// isIdempotencyKeyConflict reports whether err is a Postgres unique violation
// on the idempotency_keys primary key.
func isIdempotencyKeyConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Table == "idempotency_keys"
}
