package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	received := make(chan PointsChangeEvent, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypePointsChange, func(ctx context.Context, event Event) {
		defer wg.Done()
		if pointsEvent, ok := event.(PointsChangeEvent); ok {
			select {
			case received <- pointsEvent:
			case <-time.After(1 * time.Second):
				t.Error("Timeout sending event to channel")
			}
		} else {
			t.Errorf("Expected PointsChangeEvent, got %T", event)
		}
	})

	bus.Emit(context.Background(), PointsChangeEvent{
		UserID:    "42",
		Delta:     100,
		NewPoints: 100,
		Reason:    "daily",
	})

	wg.Wait()

	event := <-received
	assert.Equal(t, "42", event.UserID)
	assert.Equal(t, int64(100), event.Delta)
	assert.Equal(t, "daily", event.Reason)
}

func TestBus_EmitWithoutSubscribersIsSafe(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), UserCreatedEvent{UserID: "1"})
	})
}

func TestBus_SubscriberPanicIsContained(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)

	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		defer wg.Done()
		panic("handler failure")
	})
	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		defer wg.Done()
	})

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), UserCreatedEvent{UserID: "1"})
	})

	wg.Wait()
}
