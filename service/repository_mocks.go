package service

import (
	"context"
	"time"

	"pointsbot/events"
	"pointsbot/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, userID string) (*models.User, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) IncrementChatActivity(ctx context.Context, userID string, points int64) (*models.User, error) {
	args := m.Called(ctx, userID, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddPoints(ctx context.Context, userID string, delta int64) (*models.User, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ClaimDaily(ctx context.Context, userID string, reward int64, now, cutoff time.Time) (*models.User, error) {
	args := m.Called(ctx, userID, reward, now, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ClaimMonthly(ctx context.Context, userID string, reward int64, now, cutoff time.Time) (*models.User, error) {
	args := m.Called(ctx, userID, reward, now, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) BeginVoiceSession(ctx context.Context, userID string, joinedAt time.Time) error {
	args := m.Called(ctx, userID, joinedAt)
	return args.Error(0)
}

func (m *MockUserRepository) EndVoiceSession(ctx context.Context, userID string, leftAt time.Time) (*models.User, int64, error) {
	args := m.Called(ctx, userID, leftAt)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) TopByChatMessages(ctx context.Context, limit int) ([]*models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) TopByVoiceTime(ctx context.Context, limit int) ([]*models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
