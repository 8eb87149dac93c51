package repository

import (
	"context"
	"database/sql"

	"matchday/internal/database"
	"matchday/internal/models"
)

type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, user_id, seat_id, status, created_at
		FROM orders
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.SeatID,
		&order.Status,
		&order.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return order, err
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	query := `
		SELECT id, user_id, seat_id, status, created_at
		FROM orders
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.SeatID,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
