package handlers

import (
	"context"

	"matchday/internal/cache"
	"matchday/internal/models"
	"matchday/internal/service"
)

// Service seams the handlers depend on. The concrete implementations live in
// internal/service; tests substitute fakes.

type OrderService interface {
	Reserve(ctx context.Context, userID, seatID, token string) (*models.Order, bool, error)
	List(ctx context.Context) ([]models.Order, error)
}

type EventService interface {
	List(ctx context.Context, query string) ([]models.Event, error)
}

type SeatService interface {
	List(ctx context.Context, eventID string, status *string) ([]models.Seat, error)
}

type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type Handlers struct {
	orders       OrderService
	events       EventService
	seats        SeatService
	users        UserService
	valkeyClient *cache.ValkeyClient
}

func NewHandlers(services *service.Services, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		orders:       services.Orders,
		events:       services.Events,
		seats:        services.Seats,
		users:        services.Users,
		valkeyClient: valkeyClient,
	}
}
