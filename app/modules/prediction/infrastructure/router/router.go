package predictionrouter

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/scoreline-bot/app/eventbus"
	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	predictionhandlers "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/handlers"
	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// PredictionRouter handles Watermill handler registration for prediction events.
type PredictionRouter struct {
	logger     *slog.Logger
	router     *message.Router
	subscriber eventbus.EventBus
	tracer     trace.Tracer
}

// NewPredictionRouter creates a new PredictionRouter.
func NewPredictionRouter(logger *slog.Logger, router *message.Router, subscriber eventbus.EventBus, tracer trace.Tracer) *PredictionRouter {
	return &PredictionRouter{
		logger:     logger,
		router:     router,
		subscriber: subscriber,
		tracer:     tracer,
	}
}

// Configure registers the prediction handlers.
func (r *PredictionRouter) Configure(_ context.Context, handlers predictionhandlers.Handlers) error {
	r.logger.Info("Registering prediction module handlers",
		slog.String("prediction_submitted_subject", events.PredictionSubmittedV1),
	)

	handlerName := "prediction." + events.PredictionSubmittedV1
	wrapped := handlerwrapper.WrapTransformingTyped(handlerName, r.logger, r.tracer, handlers.HandlePredictionSubmitted)

	// Audit handlers never publish.
	r.router.AddNoPublisherHandler(
		handlerName,
		events.PredictionSubmittedV1,
		r.subscriber,
		func(msg *message.Message) error {
			_, err := wrapped(msg)
			return err
		},
	)
	return nil
}
