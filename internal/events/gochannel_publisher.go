package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// GoChannelEventPublisher publishes events to an in-process Watermill
// pub/sub. Used in development when no Kafka brokers are configured.
type GoChannelEventPublisher struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger *slog.Logger
}

func NewGoChannelEventPublisher(topic string, logger *slog.Logger) *GoChannelEventPublisher {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewSlogLogger(logger),
	)

	return &GoChannelEventPublisher{
		pubSub: pubSub,
		topic:  topic,
		logger: logger,
	}
}

func (p *GoChannelEventPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)

	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.Debug("event published",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topic)

	return nil
}

func (p *GoChannelEventPublisher) Close() error {
	return p.pubSub.Close()
}
