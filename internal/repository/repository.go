package repository

import (
	"matchday/internal/database"
)

type Repositories struct {
	Events       *EventRepository
	Seats        *SeatRepository
	Orders       *OrderRepository
	Users        *UserRepository
	Reservations *ReservationRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Events:       NewEventRepository(db),
		Seats:        NewSeatRepository(db),
		Orders:       NewOrderRepository(db),
		Users:        NewUserRepository(db),
		Reservations: NewReservationRepository(db),
	}
}
