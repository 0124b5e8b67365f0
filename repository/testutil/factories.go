package testutil

import (
	"time"

	"pointsbot/models"
)

// CreateTestUser creates a user record with default values
func CreateTestUser(userID string) *models.User {
	now := time.Now()
	return &models.User{
		UserID:       userID,
		Points:       0,
		ChatMessages: 0,
		VoiceMinutes: 0,
		VoiceTier:    models.Tier0,
		Achievements: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestUserWithPoints creates a user record with a specific balance
func CreateTestUserWithPoints(userID string, points int64) *models.User {
	user := CreateTestUser(userID)
	user.Points = points
	return user
}

// CreateTestUserWithVoiceTime creates a user record with accumulated
// voice minutes and the matching tier
func CreateTestUserWithVoiceTime(userID string, minutes int64) *models.User {
	user := CreateTestUser(userID)
	user.VoiceMinutes = minutes
	user.VoiceTier = models.TierFor(minutes)
	return user
}
