package service

import (
	"context"
	"fmt"
	"time"

	"pointsbot/events"
	"pointsbot/models"
)

// activityService implements the ActivityService interface
type activityService struct {
	userRepo  UserRepository
	cooldown  *ChatCooldown
	publisher EventPublisher
	now       func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(userRepo UserRepository, cooldown *ChatCooldown, publisher EventPublisher) ActivityService {
	return &activityService{
		userRepo:  userRepo,
		cooldown:  cooldown,
		publisher: publisher,
		now:       time.Now,
	}
}

// RecordChatActivity grants one point and one message count for a chat
// message, at most once per cooldown window per user. The grant is a
// single atomic upsert, so concurrent grants to the same record never
// lose updates.
func (s *activityService) RecordChatActivity(ctx context.Context, userID string) (*models.User, bool, error) {
	if !s.cooldown.ShouldGrant(userID) {
		return nil, false, nil
	}

	user, err := s.userRepo.IncrementChatActivity(ctx, userID, ChatReward)
	if err != nil {
		return nil, false, fmt.Errorf("failed to record chat activity: %w", err)
	}

	s.publisher.Emit(ctx, events.PointsChangeEvent{
		UserID:    userID,
		Delta:     ChatReward,
		NewPoints: user.Points,
		Reason:    "chat",
	})

	return user, true, nil
}

// HandleVoiceJoin opens a voice session by stamping the join time on
// the user's record, creating the record on first sight
func (s *activityService) HandleVoiceJoin(ctx context.Context, userID string) error {
	if err := s.userRepo.BeginVoiceSession(ctx, userID, s.now()); err != nil {
		return fmt.Errorf("failed to open voice session: %w", err)
	}
	return nil
}

// HandleVoiceLeave closes the user's voice session. Elapsed whole
// minutes are added to the accumulated voice time and the tier is
// recomputed; a leave without a recorded join clears silently.
func (s *activityService) HandleVoiceLeave(ctx context.Context, userID string) (*models.User, int64, error) {
	user, minutes, err := s.userRepo.EndVoiceSession(ctx, userID, s.now())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to close voice session: %w", err)
	}

	if user != nil && minutes > 0 {
		s.publisher.Emit(ctx, events.VoiceSessionEndedEvent{
			UserID:  userID,
			Minutes: minutes,
			Total:   user.VoiceMinutes,
			Tier:    user.VoiceTier,
		})
	}

	return user, minutes, nil
}
