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

type UserService struct {
	userRepo   *repository.UserRepository
	natsClient *messaging.NATSClient
}

func NewUserService(userRepo *repository.UserRepository, natsClient *messaging.NATSClient) *UserService {
	return &UserService{
		userRepo:   userRepo,
		natsClient: natsClient,
	}
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Name: req.Name,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	event := models.UserCreatedEvent{
		UserID:    user.ID,
		Name:      user.Name,
		Timestamp: time.Now(),
	}

	if err := s.natsClient.Publish(models.EventUserCreated, event); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish user created event",
			"error", err,
			"user_id", user.ID,
			"event_type", models.EventUserCreated)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
