package repository

import (
	"context"
	"database/sql"
	"fmt"

	"matchday/internal/database"
	"matchday/internal/models"
)

type SeatRepository struct {
	db *database.DB
}

func NewSeatRepository(db *database.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// CreateSeatsForEvent generates a labelled seat grid for an event. Used by
// the seed generator only; the API never creates seats.
func (r *SeatRepository) CreateSeatsForEvent(ctx context.Context, eventID string, rows, seatsPerRow int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for row := 0; row < rows; row++ {
		for seat := 1; seat <= seatsPerRow; seat++ {
			label := fmt.Sprintf("%c%d", 'A'+row, seat)

			query := `
				INSERT INTO seats (event_id, label, status)
				VALUES ($1, $2, 'available')
				ON CONFLICT (event_id, label) DO NOTHING`

			if _, err := tx.ExecContext(ctx, query, eventID, label); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *SeatRepository) GetByEventID(ctx context.Context, eventID string, status *string) ([]models.Seat, error) {
	var seats []models.Seat
	args := []interface{}{eventID}

	query := `
		SELECT id, event_id, label, status, created_at
		FROM seats
		WHERE event_id = $1`

	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}

	query += " ORDER BY label"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seat models.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.EventID,
			&seat.Label,
			&seat.Status,
			&seat.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

func (r *SeatRepository) GetByID(ctx context.Context, id string) (*models.Seat, error) {
	seat := &models.Seat{}
	query := `
		SELECT id, event_id, label, status, created_at
		FROM seats
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&seat.ID,
		&seat.EventID,
		&seat.Label,
		&seat.Status,
		&seat.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return seat, err
}
