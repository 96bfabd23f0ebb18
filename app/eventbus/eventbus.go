package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"

	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
)

// EventBus is the publisher/subscriber pair every module talks to.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// eventBus routes messages published without a topic by their metadata and
// owns the lifetime of the underlying transport.
type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	closers    []func() error
	logger     *slog.Logger
}

var _ EventBus = (*eventBus)(nil)

// NewEventBus creates the bus. With an empty natsURL messages stay in-process on
// a Go channel; otherwise they travel over core NATS.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	// Create a Watermill logger that wraps slog
	watermillLogger := watermill.NewSlogLogger(logger)

	if natsURL == "" {
		logger.InfoContext(ctx, "Using in-process event bus")
		return NewInProcess(watermillLogger, logger), nil
	}

	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in NATS subscription", slog.String("subject", s.Subject), slog.Any("error", err))
			} else {
				logger.Error("Error in NATS connection", slog.Any("error", err))
			}
		}),
	}

	// Create a Marshaller for the publisher
	marshaller := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   marshaller,
			JetStream: nats.JetStreamConfig{
				Disabled: true,
			},
		},
		watermillLogger,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:         natsURL,
			NatsOptions: options,
			Unmarshaler: marshaller,
			JetStream: nats.JetStreamConfig{
				Disabled: true,
			},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected event bus to NATS", slog.String("url", natsURL))

	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		closers:    []func() error{subscriber.Close, publisher.Close},
		logger:     logger,
	}, nil
}

// NewInProcess returns a bus backed by a watermill Go channel. Publish blocks
// until every subscriber acked, so each topic is consumed in publish order.
// Handlers must not publish to the topic they consume.
func NewInProcess(watermillLogger watermill.LoggerAdapter, logger *slog.Logger) EventBus {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            256,
		BlockPublishUntilSubscriberAck: true,
	}, watermillLogger)
	return &eventBus{
		publisher:  ch,
		subscriber: ch,
		closers:    []func() error{ch.Close},
		logger:     logger,
	}
}

// Publish sends messages to topic. When topic is empty each message goes to the
// topic named in its metadata.
func (b *eventBus) Publish(topic string, messages ...*message.Message) error {
	if topic != "" {
		return b.publisher.Publish(topic, messages...)
	}

	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		t := msg.Metadata.Get(handlerwrapper.MetadataTopic)
		if t == "" {
			return fmt.Errorf("message %s has no topic in metadata", msg.UUID)
		}
		if err := b.publisher.Publish(t, msg); err != nil {
			b.logger.Error("Failed to publish message",
				slog.String("topic", t),
				slog.String("message_uuid", msg.UUID),
				slog.Any("error", err),
			)
			return fmt.Errorf("failed to publish to %s: %w", t, err)
		}
	}
	return nil
}

// Subscribe subscribes to topic on the underlying transport.
func (b *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Close closes all Watermill resources.
func (b *eventBus) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
