package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/scoreline-bot/app/eventbus"
	chatservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/chat/application"
	chathandlers "github.com/Black-And-White-Club/scoreline-bot/app/modules/chat/infrastructure/handlers"
	chatrouter "github.com/Black-And-White-Club/scoreline-bot/app/modules/chat/infrastructure/router"
	conversationservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/application"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"github.com/Black-And-White-Club/scoreline-bot/internal/ratelimit"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Options tunes the per-chat inbound rate limit. A Rate of zero or below
// disables it.
type Options struct {
	Rate  float64
	Burst int
}

func (o Options) limiter() *ratelimit.KeyedLimiter[int64] {
	if o.Rate <= 0 {
		return nil
	}
	return ratelimit.New[int64](rate.Limit(o.Rate), o.Burst)
}

// Module represents the chat module.
type Module struct {
	Dispatcher *chatservice.Dispatcher
	ChatRouter *chatrouter.ChatRouter
	logger     *slog.Logger
}

// NewChatModule creates and initializes the chat module.
func NewChatModule(
	ctx context.Context,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.Metrics,
	registry *prometheus.Registry,
	matches chatservice.MatchQueries,
	predictions chatservice.PredictionQueries,
	conversation conversationservice.Service,
	opts Options,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger.InfoContext(ctx, "chat.NewChatModule initializing")

	dispatcher := chatservice.NewDispatcher(matches, predictions, conversation, logger, tracer, metrics)

	handlers := chathandlers.NewChatHandlers(dispatcher, opts.limiter(), logger, tracer, metrics)

	chatRouter := chatrouter.NewChatRouter(logger, router, eventBus, eventBus, tracer, registry)
	if err := chatRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure chat router: %w", err)
	}

	return &Module{
		Dispatcher: dispatcher,
		ChatRouter: chatRouter,
		logger:     logger,
	}, nil
}

// Close shuts down the chat module. The shared router is closed by the app.
func (m *Module) Close() error {
	m.logger.Info("Chat module stopped")
	return nil
}
