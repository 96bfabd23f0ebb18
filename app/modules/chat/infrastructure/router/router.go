package chatrouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/scoreline-bot/app/eventbus"
	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	chathandlers "github.com/Black-And-White-Club/scoreline-bot/app/modules/chat/infrastructure/handlers"
	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// ChatRouter handles Watermill handler registration for chat events.
type ChatRouter struct {
	logger         *slog.Logger
	router         *message.Router
	subscriber     eventbus.EventBus
	publisher      eventbus.EventBus
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewChatRouter creates a new ChatRouter. A nil registry skips router metrics.
func NewChatRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	registry *prometheus.Registry,
) *ChatRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if registry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(registry, "scoreline", "chat")
		metricsBuilder = &builder
	}
	return &ChatRouter{
		logger:         logger,
		router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
	}
}

// Configure sets up the router with handlers.
func (r *ChatRouter) Configure(_ context.Context, handlers chathandlers.Handlers) error {
	if r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.router)
	}
	r.registerHandlers(handlers)
	return nil
}

// handlerDeps bundles dependencies for handler registration.
type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
}

func (r *ChatRouter) registerHandlers(handlers chathandlers.Handlers) {
	deps := handlerDeps{
		router:     r.router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	r.logger.Info("Registering chat module handlers",
		slog.String("message_received_subject", events.ChatMessageReceivedV1),
	)

	registerHandler(deps, events.ChatMessageReceivedV1, handlers.HandleMessageReceived)

	r.logger.Info("Chat module handlers registered successfully")
}

// registerHandler is a generic function for type-safe Watermill handler registration.
// Produced messages carry their own topic in metadata, so the publish topic is empty.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "chat." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			handler,
		),
	)
}
