package service

import (
	"context"
	"time"

	"pointsbot/events"
	"pointsbot/models"
)

// UserRepository defines the interface for user record data access
type UserRepository interface {
	// GetOrCreate returns the record for the given user, creating it
	// with defaults on first reference. The bool reports whether a new
	// record was created.
	GetOrCreate(ctx context.Context, userID string) (*models.User, bool, error)

	// IncrementChatActivity atomically adds one chat message and the
	// given points, creating the record if needed
	IncrementChatActivity(ctx context.Context, userID string, points int64) (*models.User, error)

	// AddPoints atomically adjusts the point balance by delta, which
	// may be negative
	AddPoints(ctx context.Context, userID string, delta int64) (*models.User, error)

	// ClaimDaily grants the daily reward if the previous claim is older
	// than cutoff; returns nil when the window has not elapsed
	ClaimDaily(ctx context.Context, userID string, reward int64, now, cutoff time.Time) (*models.User, error)

	// ClaimMonthly grants the monthly reward if the previous claim is
	// older than cutoff; returns nil when the window has not elapsed
	ClaimMonthly(ctx context.Context, userID string, reward int64, now, cutoff time.Time) (*models.User, error)

	// BeginVoiceSession stamps the voice join time on the record
	BeginVoiceSession(ctx context.Context, userID string, joinedAt time.Time) error

	// EndVoiceSession accrues floored session minutes, recomputes the
	// tier and clears the join timestamp
	EndVoiceSession(ctx context.Context, userID string, leftAt time.Time) (*models.User, int64, error)

	// TopByChatMessages returns the top users by chat message count
	TopByChatMessages(ctx context.Context, limit int) ([]*models.User, error)

	// TopByVoiceTime returns the top users by accumulated voice minutes
	TopByVoiceTime(ctx context.Context, limit int) ([]*models.User, error)
}

// EventPublisher publishes domain events to interested subscribers
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// UserService defines the interface for record lifecycle operations
type UserService interface {
	// GetOrCreateUser retrieves an existing record or lazily creates
	// one with defaults
	GetOrCreateUser(ctx context.Context, userID string) (*models.User, error)
}

// ActivityService defines the interface for chat and voice engagement
// tracking
type ActivityService interface {
	// RecordChatActivity grants the cooldown-gated chat point and
	// message count. Returns the updated record and whether a grant
	// was applied; a suppressed grant returns (nil, false, nil).
	RecordChatActivity(ctx context.Context, userID string) (*models.User, bool, error)

	// HandleVoiceJoin opens a voice session for the user
	HandleVoiceJoin(ctx context.Context, userID string) error

	// HandleVoiceLeave closes the user's voice session and returns the
	// updated record and accrued minutes
	HandleVoiceLeave(ctx context.Context, userID string) (*models.User, int64, error)
}

// EconomyService defines the interface for claims and gambling
type EconomyService interface {
	// ClaimDaily grants the daily reward or fails with ErrDailyNotReady
	ClaimDaily(ctx context.Context, userID string) (*models.User, error)

	// ClaimMonthly grants the monthly reward or fails with
	// ErrMonthlyNotReady
	ClaimMonthly(ctx context.Context, userID string) (*models.User, error)

	// Gamble wagers bet points on a coin flip; the balance changes by
	// exactly +bet or -bet
	Gamble(ctx context.Context, userID string, bet int64) (*models.GambleResult, error)
}

// LeaderboardKind selects which metric a leaderboard ranks by
type LeaderboardKind string

const (
	LeaderboardChat  LeaderboardKind = "chat"
	LeaderboardVoice LeaderboardKind = "vc"
)

// LeaderboardService defines the interface for leaderboard reporting
type LeaderboardService interface {
	// Top returns the highest-ranked records for the given kind
	Top(ctx context.Context, kind LeaderboardKind) ([]*models.User, error)
}
