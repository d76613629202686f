package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus delivers events to whoever listens. Publishing never blocks on
// consumers.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// ChannelBus is the in-process bus used when no broker is configured.
type ChannelBus struct {
	pubSub *gochannel.GoChannel
}

func NewChannelBus(logger watermill.LoggerAdapter) *ChannelBus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &ChannelBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger),
	}
}

func (b *ChannelBus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	msg.Metadata.Set(HeaderEventType, event.EventType())
	msg.Metadata.Set(HeaderOccurredAt, event.Timestamp().UTC().Format(time.RFC3339Nano))

	if err := b.pubSub.Publish(Subject(event.EventType()), msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
	}
	return nil
}

// Subscribe returns the messages published for eventType until ctx ends.
// Each message must be acked.
func (b *ChannelBus) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, Subject(eventType))
}

func (b *ChannelBus) Close() error {
	return b.pubSub.Close()
}

// Decode rebuilds an event from a bus message.
func Decode(msg *message.Message) (BaseEvent, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return BaseEvent{}, fmt.Errorf("failed to unmarshal event payload: %w", err)
	}

	occurredAt, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get(HeaderOccurredAt))
	if err != nil {
		occurredAt = time.Now()
	}

	return BaseEvent{
		Type:       msg.Metadata.Get(HeaderEventType),
		Data:       payload,
		OccurredAt: occurredAt,
	}, nil
}
