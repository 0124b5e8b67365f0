package service

import (
	"context"
	"errors"
	"testing"

	"pointsbot/events"
	"pointsbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_GetOrCreateUser_ExistingUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)

	service := NewUserService(mockUserRepo, mockPublisher)

	existingUser := testutil.CreateTestUserWithPoints("123456", 500)

	mockUserRepo.On("GetOrCreate", ctx, "123456").Return(existingUser, false, nil)

	user, err := service.GetOrCreateUser(ctx, "123456")

	assert.NoError(t, err)
	assert.Equal(t, existingUser, user)

	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertNotCalled(t, "Emit")
}

func TestUserService_GetOrCreateUser_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)

	service := NewUserService(mockUserRepo, mockPublisher)

	newUser := testutil.CreateTestUser("123456")

	mockUserRepo.On("GetOrCreate", ctx, "123456").Return(newUser, true, nil)
	mockPublisher.On("Emit", ctx, mock.MatchedBy(func(e events.Event) bool {
		created, ok := e.(events.UserCreatedEvent)
		return ok && created.UserID == "123456"
	})).Return()

	user, err := service.GetOrCreateUser(ctx, "123456")

	assert.NoError(t, err)
	assert.Equal(t, newUser, user)

	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_RepeatedCallsAreIdempotent(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)

	service := NewUserService(mockUserRepo, mockPublisher)

	record := testutil.CreateTestUser("123456")

	mockUserRepo.On("GetOrCreate", ctx, "123456").Return(record, true, nil).Once()
	mockUserRepo.On("GetOrCreate", ctx, "123456").Return(record, false, nil).Once()
	mockPublisher.On("Emit", ctx, mock.AnythingOfType("events.UserCreatedEvent")).Return().Once()

	first, err := service.GetOrCreateUser(ctx, "123456")
	assert.NoError(t, err)

	second, err := service.GetOrCreateUser(ctx, "123456")
	assert.NoError(t, err)

	assert.Equal(t, first, second)

	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_RepositoryError(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)

	service := NewUserService(mockUserRepo, mockPublisher)

	mockUserRepo.On("GetOrCreate", ctx, "123456").Return(nil, false, errors.New("connection refused"))

	user, err := service.GetOrCreateUser(ctx, "123456")

	assert.Error(t, err)
	assert.Nil(t, user)
	mockPublisher.AssertNotCalled(t, "Emit")
}
