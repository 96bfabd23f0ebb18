package predictionhandlers

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PredictionHandlers implements Handlers.
type PredictionHandlers struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics observability.Metrics
}

// NewPredictionHandlers creates a new PredictionHandlers instance.
func NewPredictionHandlers(logger *slog.Logger, tracer trace.Tracer, metrics observability.Metrics) Handlers {
	return &PredictionHandlers{
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// HandlePredictionSubmitted records the prediction in metrics and the audit log.
// It produces no follow-up events.
func (h *PredictionHandlers) HandlePredictionSubmitted(ctx context.Context, payload *events.PredictionSubmittedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "PredictionHandlers.HandlePredictionSubmitted", trace.WithAttributes(
		attribute.String("prediction.id", payload.PredictionID),
	))
	defer span.End()

	if payload.PredictionID == "" {
		h.logger.WarnContext(ctx, "Ignoring prediction event without id",
			slog.Int64("chat_id", payload.ChatID),
		)
		return nil, nil
	}

	h.metrics.RecordPredictionSubmitted()
	h.logger.InfoContext(ctx, "Prediction submitted",
		slog.String("prediction_id", payload.PredictionID),
		slog.Int64("chat_id", payload.ChatID),
		slog.Int64("user_id", payload.UserID),
		slog.String("user", payload.User),
		slog.String("match", payload.Match),
		slog.String("match_date", payload.MatchDate),
		slog.Int("home", payload.Home),
		slog.Int("away", payload.Away),
		slog.Time("submitted_at", payload.SubmittedAt),
	)
	return nil, nil
}
