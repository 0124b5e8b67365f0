package service

import "time"

// Economy constants. These are fixed rules, not configuration.
const (
	// ChatReward is granted per cooldown-gated chat message
	ChatReward int64 = 1

	// ChatCooldownWindow suppresses repeat chat grants per user
	ChatCooldownWindow = 5 * time.Second

	// DailyReward is granted per daily claim
	DailyReward int64 = 100

	// DailyClaimWindow is the minimum interval between daily claims
	DailyClaimWindow = 24 * time.Hour

	// MonthlyReward is granted per monthly claim
	MonthlyReward int64 = 3000

	// MonthlyClaimWindow is the minimum interval between monthly claims
	MonthlyClaimWindow = 30 * 24 * time.Hour

	// GambleWinProbability is the chance a gamble pays out
	GambleWinProbability = 0.5

	// LeaderboardLimit caps leaderboard entries
	LeaderboardLimit = 10
)
