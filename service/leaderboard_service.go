package service

import (
	"context"
	"fmt"

	"pointsbot/models"
)

// leaderboardService implements the LeaderboardService interface
type leaderboardService struct {
	userRepo UserRepository
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(userRepo UserRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo}
}

// Top returns up to LeaderboardLimit records ranked by the given kind,
// descending, with ties in a stable order
func (s *leaderboardService) Top(ctx context.Context, kind LeaderboardKind) ([]*models.User, error) {
	switch kind {
	case LeaderboardChat:
		users, err := s.userRepo.TopByChatMessages(ctx, LeaderboardLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load chat leaderboard: %w", err)
		}
		return users, nil
	case LeaderboardVoice:
		users, err := s.userRepo.TopByVoiceTime(ctx, LeaderboardLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load voice leaderboard: %w", err)
		}
		return users, nil
	default:
		return nil, fmt.Errorf("unknown leaderboard kind: %s", kind)
	}
}
