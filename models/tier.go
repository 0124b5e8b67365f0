package models

import (
	"time"
)

// Tier is a discrete label derived from accumulated voice minutes
type Tier string

const (
	Tier0 Tier = "Tier 0"
	Tier1 Tier = "Tier 1"
	Tier2 Tier = "Tier 2"
	Tier3 Tier = "Tier 3"
)

// TierFor classifies accumulated voice minutes into a tier
func TierFor(voiceMinutes int64) Tier {
	switch {
	case voiceMinutes >= 360:
		return Tier3
	case voiceMinutes >= 180:
		return Tier2
	case voiceMinutes >= 60:
		return Tier1
	default:
		return Tier0
	}
}

// SessionMinutes returns the whole minutes spent in a voice session,
// floor-truncated. Sessions shorter than a minute count as zero.
func SessionMinutes(joinedAt, leftAt time.Time) int64 {
	elapsed := leftAt.Sub(joinedAt)
	if elapsed <= 0 {
		return 0
	}
	return int64(elapsed / time.Minute)
}
