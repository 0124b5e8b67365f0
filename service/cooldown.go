package service

import (
	"sync"
	"time"
)

// ChatCooldown is a process-local, time-windowed membership set that
// suppresses duplicate chat grants. State is deliberately ephemeral: a
// restart resets every cooldown to "elapsed", which costs at most one
// extra grant per user.
type ChatCooldown struct {
	mu     sync.Mutex
	window time.Duration
	armed  map[string]time.Time
	now    func() time.Time
}

// NewChatCooldown creates a cooldown tracker with the given window
func NewChatCooldown(window time.Duration) *ChatCooldown {
	return &ChatCooldown{
		window: window,
		armed:  make(map[string]time.Time),
		now:    time.Now,
	}
}

// ShouldGrant reports whether a grant is allowed for the user right
// now. The first call for a user returns true and arms the window;
// calls within the window return false; once the window elapses the
// next call returns true and re-arms.
func (c *ChatCooldown) ShouldGrant(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if armedAt, ok := c.armed[userID]; ok && now.Sub(armedAt) < c.window {
		return false
	}

	c.armed[userID] = now
	return true
}

// Sweep drops entries whose window has elapsed. Called periodically so
// the set does not grow with every user ever seen.
func (c *ChatCooldown) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for userID, armedAt := range c.armed {
		if now.Sub(armedAt) >= c.window {
			delete(c.armed, userID)
		}
	}
}
