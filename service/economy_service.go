package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"pointsbot/events"
	"pointsbot/models"
)

// economyService implements the EconomyService interface
type economyService struct {
	userRepo  UserRepository
	publisher EventPublisher
	now       func() time.Time
	roll      func() float64
}

// NewEconomyService creates a new economy service
func NewEconomyService(userRepo UserRepository, publisher EventPublisher) EconomyService {
	return &economyService{
		userRepo:  userRepo,
		publisher: publisher,
		now:       time.Now,
		roll:      rand.Float64,
	}
}

// ClaimDaily grants the daily reward. The claim is a conditional update
// guarded by the last claim timestamp, so two racing claims cannot both
// succeed inside one window.
func (s *economyService) ClaimDaily(ctx context.Context, userID string) (*models.User, error) {
	if _, _, err := s.userRepo.GetOrCreate(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	now := s.now()
	user, err := s.userRepo.ClaimDaily(ctx, userID, DailyReward, now, now.Add(-DailyClaimWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to claim daily reward: %w", err)
	}
	if user == nil {
		return nil, ErrDailyNotReady
	}

	s.publisher.Emit(ctx, events.PointsChangeEvent{
		UserID:    userID,
		Delta:     DailyReward,
		NewPoints: user.Points,
		Reason:    "daily",
	})

	return user, nil
}

// ClaimMonthly grants the monthly reward under the same conditional
// update scheme as ClaimDaily
func (s *economyService) ClaimMonthly(ctx context.Context, userID string) (*models.User, error) {
	if _, _, err := s.userRepo.GetOrCreate(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	now := s.now()
	user, err := s.userRepo.ClaimMonthly(ctx, userID, MonthlyReward, now, now.Add(-MonthlyClaimWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to claim monthly reward: %w", err)
	}
	if user == nil {
		return nil, ErrMonthlyNotReady
	}

	s.publisher.Emit(ctx, events.PointsChangeEvent{
		UserID:    userID,
		Delta:     MonthlyReward,
		NewPoints: user.Points,
		Reason:    "monthly",
	})

	return user, nil
}

// Gamble wagers bet points on a coin flip. Wins add exactly bet, losses
// subtract exactly bet; losses may take the balance below zero since
// validation happens before the roll. Invalid or unaffordable bets
// change nothing.
func (s *economyService) Gamble(ctx context.Context, userID string, bet int64) (*models.GambleResult, error) {
	if bet <= 0 {
		return nil, ErrInvalidBet
	}

	user, _, err := s.userRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if bet > user.Points {
		return nil, ErrInsufficientPoints
	}

	won := s.roll() < GambleWinProbability
	delta := bet
	if !won {
		delta = -bet
	}

	updated, err := s.userRepo.AddPoints(ctx, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to settle gamble: %w", err)
	}

	s.publisher.Emit(ctx, events.PointsChangeEvent{
		UserID:    userID,
		Delta:     delta,
		NewPoints: updated.Points,
		Reason:    "gamble",
	})

	return &models.GambleResult{
		Won:       won,
		BetAmount: bet,
		NewPoints: updated.Points,
	}, nil
}
