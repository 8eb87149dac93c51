package service

import (
	"context"
	"fmt"
	"time"

	"matchday/internal/logger"
	"matchday/internal/messaging"
	"matchday/internal/models"
	"matchday/internal/repository"
)

type OrderService struct {
	reservationRepo *repository.ReservationRepository
	orderRepo       *repository.OrderRepository
	seatRepo        *repository.SeatRepository
	natsClient      *messaging.NATSClient
}

func NewOrderService(reservationRepo *repository.ReservationRepository, orderRepo *repository.OrderRepository, seatRepo *repository.SeatRepository, natsClient *messaging.NATSClient) *OrderService {
	return &OrderService{
		reservationRepo: reservationRepo,
		orderRepo:       orderRepo,
		seatRepo:        seatRepo,
		natsClient:      natsClient,
	}
}

// Reserve runs the reservation transaction and, on a first success, publishes
// order.created. Replays publish nothing: the seat already flipped once.
// Business-rule failures (seat missing or taken) pass through as the
// repository's sentinel errors.
func (s *OrderService) Reserve(ctx context.Context, userID, seatID, token string) (*models.Order, bool, error) {
	order, replay, err := s.reservationRepo.Reserve(ctx, userID, seatID, token)
	if err != nil {
		return nil, false, err
	}

	if !replay {
		s.publishOrderCreated(ctx, order)
	}

	return order, replay, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	eventID := ""
	seat, err := s.seatRepo.GetByID(ctx, order.SeatID)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to load seat for order event",
			"error", err,
			"order_id", order.ID,
			"seat_id", order.SeatID)
	} else if seat != nil {
		eventID = seat.EventID
	}

	event := models.OrderCreatedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		SeatID:    order.SeatID,
		EventID:   eventID,
		Timestamp: time.Now(),
	}

	if err := s.natsClient.Publish(models.EventOrderCreated, event); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish order created event",
			"error", err,
			"order_id", order.ID,
			"event_type", models.EventOrderCreated)
	}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
