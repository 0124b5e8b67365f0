package service

import (
	"context"
	"fmt"

	"pointsbot/events"
	"pointsbot/models"
)

// userService implements the UserService interface
type userService struct {
	userRepo  UserRepository
	publisher EventPublisher
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, publisher EventPublisher) UserService {
	return &userService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// GetOrCreateUser retrieves an existing record or lazily creates one
// with defaults. Creation is idempotent; the database upsert prevents
// duplicates under concurrent first references.
func (s *userService) GetOrCreateUser(ctx context.Context, userID string) (*models.User, error) {
	user, created, err := s.userRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	if created {
		s.publisher.Emit(ctx, events.UserCreatedEvent{UserID: userID})
	}

	return user, nil
}
