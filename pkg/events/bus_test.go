package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelBusDeliversToSubscribers(t *testing.T) {
	bus := NewChannelBus(nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := bus.Subscribe(ctx, "NOTE_CREATED")
	require.NoError(t, err)

	occurred := time.Date(2026, time.February, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, bus.Publish(ctx, BaseEvent{
		Type:       "NOTE_CREATED",
		Data:       map[string]interface{}{"note_id": "n-1", "title": "Hello"},
		OccurredAt: occurred,
	}))

	select {
	case msg := <-messages:
		msg.Ack()
		evt, err := Decode(msg)
		require.NoError(t, err)
		assert.Equal(t, "NOTE_CREATED", evt.Type)
		assert.Equal(t, "Hello", evt.Data["title"])
		assert.True(t, occurred.Equal(evt.OccurredAt))
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestPublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	bus := NewChannelBus(nil)
	defer bus.Close()

	done := make(chan error, 1)
	go func() {
		done <- bus.Publish(context.Background(), BaseEvent{Type: "USER_DELETED", OccurredAt: time.Now()})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked")
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.NOTE_DELETED", Subject("NOTE_DELETED"))
	assert.Equal(t, "NOTE_DELETED", TypeFromSubject("events.NOTE_DELETED"))
}
