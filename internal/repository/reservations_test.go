package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"matchday/internal/database"
	apperrors "matchday/internal/errors"
	"matchday/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "7b7e1f3a-4a44-4cf5-9f3d-0d5a1f0a9b01"
	testSeatID  = "2f5b7a1c-90de-4e2a-8af0-6f6f3d9a2c02"
	testOrderID = "9c9d8e7f-6a5b-4c3d-2e1f-0a9b8c7d6e03"
	testToken   = "client-token-1"
)

func newReservationRepo(t *testing.T) (*ReservationRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewReservationRepository(&database.DB{DB: db}), mock
}

func orderRows(createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "seat_id", "status", "created_at"}).
		AddRow(testOrderID, testUserID, testSeatID, models.OrderPending, createdAt)
}

func TestReserveFirstUse(t *testing.T) {
	repo, mock := newReservationRepo(t)
	createdAt := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
		WithArgs(testToken).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT status FROM seats WHERE id = .+ FOR UPDATE").
		WithArgs(testSeatID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.SeatAvailable))
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), testUserID, testSeatID, models.OrderPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE seats SET status").
		WithArgs(models.SeatReserved, testSeatID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO idempotency_keys").
		WithArgs(testToken, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// Canonical re-read after commit
	mock.ExpectQuery("SELECT id, user_id, seat_id, status, created_at").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(orderRows(createdAt))

	order, replay, err := repo.Reserve(context.Background(), testUserID, testSeatID, testToken)
	require.NoError(t, err)

	assert.False(t, replay)
	assert.Equal(t, testOrderID, order.ID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveReplayReturnsExistingOrder(t *testing.T) {
	repo, mock := newReservationRepo(t)
	createdAt := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
		WithArgs(testToken).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(testOrderID))
	// Replay is read-only: no inserts, no seat lock, just the order fetch.
	mock.ExpectQuery("SELECT id, user_id, seat_id, status, created_at").
		WithArgs(testOrderID).
		WillReturnRows(orderRows(createdAt))
	mock.ExpectCommit()

	order, replay, err := repo.Reserve(context.Background(), testUserID, testSeatID, testToken)
	require.NoError(t, err)

	assert.True(t, replay)
	assert.Equal(t, testOrderID, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeatNotFound(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
		WithArgs(testToken).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT status FROM seats WHERE id = .+ FOR UPDATE").
		WithArgs(testSeatID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	order, replay, err := repo.Reserve(context.Background(), testUserID, testSeatID, testToken)

	assert.ErrorIs(t, err, apperrors.ErrSeatNotFound)
	assert.Nil(t, order)
	assert.False(t, replay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveSeatUnavailable(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
		WithArgs(testToken).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT status FROM seats WHERE id = .+ FOR UPDATE").
		WithArgs(testSeatID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.SeatReserved))
	mock.ExpectRollback()

	_, _, err := repo.Reserve(context.Background(), testUserID, testSeatID, testToken)

	assert.ErrorIs(t, err, apperrors.ErrSeatUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent request with the same token can commit between our idempotency
// read and our insert. The insert then hits the primary key, the transaction
// rolls back, and a single retry takes the replay path.
func TestReserveRetriesOnceOnIdempotencyConflict(t *testing.T) {
	repo, mock := newReservationRepo(t)
	createdAt := time.Now()
	uniqueViolation := &pq.Error{Code: "23505", Table: "idempotency_keys"}

	// First attempt: loses the insert race.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
		WithArgs(testToken).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT status FROM seats WHERE id = .+ FOR UPDATE").
		WithArgs(testSeatID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.SeatAvailable))
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), testUserID, testSeatID, models.OrderPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE seats SET status").
		WithArgs(models.SeatReserved, testSeatID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO idempotency_keys").
		WithArgs(testToken, sqlmock.AnyArg()).
		WillReturnError(uniqueViolation)
	mock.ExpectRollback()

	// Retry: the winner's row is now visible, so this is a replay.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
		WithArgs(testToken).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(testOrderID))
	mock.ExpectQuery("SELECT id, user_id, seat_id, status, created_at").
		WithArgs(testOrderID).
		WillReturnRows(orderRows(createdAt))
	mock.ExpectCommit()

	order, replay, err := repo.Reserve(context.Background(), testUserID, testSeatID, testToken)
	require.NoError(t, err)

	assert.True(t, replay)
	assert.Equal(t, testOrderID, order.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveGivesUpAfterSecondConflict(t *testing.T) {
	repo, mock := newReservationRepo(t)
	uniqueViolation := &pq.Error{Code: "23505", Table: "idempotency_keys"}

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
			WithArgs(testToken).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT status FROM seats WHERE id = .+ FOR UPDATE").
			WithArgs(testSeatID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.SeatAvailable))
		mock.ExpectExec("INSERT INTO orders").
			WithArgs(sqlmock.AnyArg(), testUserID, testSeatID, models.OrderPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE seats SET status").
			WithArgs(models.SeatReserved, testSeatID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO idempotency_keys").
			WithArgs(testToken, sqlmock.AnyArg()).
			WillReturnError(uniqueViolation)
		mock.ExpectRollback()
	}

	_, _, err := repo.Reserve(context.Background(), testUserID, testSeatID, testToken)

	assert.ErrorIs(t, err, apperrors.ErrIdempotencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A store failure mid-transaction must roll everything back and surface a
// plain error, not a partial commit.
func TestReserveRollsBackOnInsertFailure(t *testing.T) {
	repo, mock := newReservationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT order_id FROM idempotency_keys WHERE key = .+ FOR UPDATE").
		WithArgs(testToken).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT status FROM seats WHERE id = .+ FOR UPDATE").
		WithArgs(testSeatID).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.SeatAvailable))
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), testUserID, testSeatID, models.OrderPending).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	order, _, err := repo.Reserve(context.Background(), testUserID, testSeatID, testToken)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrSeatNotFound)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}
