package models

import (
	"time"
)

// User represents a Discord user's engagement record. One row exists per
// user ever observed in the authorized guild; rows are never deleted.
type User struct {
	UserID       string     `db:"user_id"`
	Points       int64      `db:"points"`
	ChatMessages int64      `db:"chat_messages"`
	VoiceMinutes int64      `db:"vc_time"`
	VoiceTier    Tier       `db:"vc_tier"`
	Achievements []string   `db:"achievements"`
	VIP          bool       `db:"vip"`
	LastDaily    *time.Time `db:"last_daily"`
	LastMonthly  *time.Time `db:"last_monthly"`
	// VoiceJoinedAt is set while the user occupies a voice channel and
	// cleared when the session closes. Nil means no active session.
	VoiceJoinedAt *time.Time `db:"voice_joined_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// GambleResult represents the outcome of a coin-flip gamble
type GambleResult struct {
	Won       bool
	BetAmount int64
	NewPoints int64
}
