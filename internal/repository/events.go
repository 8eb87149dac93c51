package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"matchday/internal/database"
	"matchday/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (name, starts_at)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		event.Name,
		event.StartsAt,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event := &models.Event{}
	query := `
		SELECT id, name, starts_at, created_at
		FROM events
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.StartsAt,
		&event.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, name, starts_at, created_at
		FROM events
		ORDER BY starts_at`

	return r.queryEvents(ctx, query)
}

// SearchByName is the fallback search path when Elasticsearch is not
// configured.
func (r *EventRepository) SearchByName(ctx context.Context, name string) ([]models.Event, error) {
	query := `
		SELECT id, name, starts_at, created_at
		FROM events
		WHERE name ILIKE $1
		ORDER BY starts_at`

	return r.queryEvents(ctx, query, "%"+name+"%")
}

// GetByIDs returns events for the given ids preserving the input order, which
// carries search relevance ranking through from Elasticsearch.
func (r *EventRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, name, starts_at, created_at
		FROM events
		WHERE id IN (%s)`, strings.Join(placeholders, ", "))

	events, err := r.queryEvents(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Event, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}

	ordered := make([]models.Event, 0, len(events))
	for _, id := range ids {
		if event, ok := byID[id]; ok {
			ordered = append(ordered, event)
		}
	}

	return ordered, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]models.Event, error) {
	var events []models.Event

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.StartsAt,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
