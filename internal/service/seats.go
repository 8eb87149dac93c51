package service

import (
	"context"
	"fmt"

	apperrors "matchday/internal/errors"
	"matchday/internal/models"
	"matchday/internal/repository"
)

type SeatService struct {
	seatRepo  *repository.SeatRepository
	eventRepo *repository.EventRepository
}

func NewSeatService(seatRepo *repository.SeatRepository, eventRepo *repository.EventRepository) *SeatService {
	return &SeatService{
		seatRepo:  seatRepo,
		eventRepo: eventRepo,
	}
}

func (s *SeatService) List(ctx context.Context, eventID string, status *string) ([]models.Seat, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	seats, err := s.seatRepo.GetByEventID(ctx, eventID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get seats: %w", err)
	}

	return seats, nil
}
