package events

import (
	"context"
	"sync"

	"pointsbot/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated       EventType = "user_created"
	EventTypePointsChange      EventType = "points_change"
	EventTypeVoiceSessionEnded EventType = "voice_session_ended"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent is emitted when a record is lazily created for a
// user seen for the first time
type UserCreatedEvent struct {
	UserID string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// PointsChangeEvent represents a change to a user's point balance
type PointsChangeEvent struct {
	UserID    string
	Delta     int64
	NewPoints int64
	Reason    string
}

func (e PointsChangeEvent) Type() EventType {
	return EventTypePointsChange
}

// VoiceSessionEndedEvent is emitted when a voice session closes and
// minutes have been accrued
type VoiceSessionEndedEvent struct {
	UserID  string
	Minutes int64
	Total   int64
	Tier    models.Tier
}

func (e VoiceSessionEndedEvent) Type() EventType {
	return EventTypeVoiceSessionEnded
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so publishers never block on subscribers.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
