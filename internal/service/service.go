package service

import (
	"matchday/internal/messaging"
	"matchday/internal/repository"
	"matchday/internal/search"
)

type Services struct {
	Events *EventService
	Seats  *SeatService
	Orders *OrderService
	Users  *UserService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, searchClient *search.ElasticsearchClient) *Services {
	eventService := NewEventService(repos.Events, searchClient)
	seatService := NewSeatService(repos.Seats, repos.Events)
	orderService := NewOrderService(repos.Reservations, repos.Orders, repos.Seats, natsClient)
	userService := NewUserService(repos.Users, natsClient)

	return &Services{
		Events: eventService,
		Seats:  seatService,
		Orders: orderService,
		Users:  userService,
	}
}
