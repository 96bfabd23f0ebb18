package prediction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/scoreline-bot/app/eventbus"
	predictionservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/application"
	predictionhandlers "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/handlers"
	predictiondb "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/repositories"
	predictionrouter "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/router"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the prediction module.
type Module struct {
	PredictionService predictionservice.Service
	PredictionRouter  *predictionrouter.PredictionRouter
	logger            *slog.Logger
}

// NewPredictionModule creates and initializes the prediction module.
func NewPredictionModule(
	ctx context.Context,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.Metrics,
	repo predictiondb.Repository,
	eventBus eventbus.EventBus,
	router *message.Router,
) (*Module, error) {
	logger.InfoContext(ctx, "prediction.NewPredictionModule initializing")

	service := predictionservice.NewPredictionService(repo, logger, tracer)
	handlers := predictionhandlers.NewPredictionHandlers(logger, tracer, metrics)

	predictionRouter := predictionrouter.NewPredictionRouter(logger, router, eventBus, tracer)
	if err := predictionRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure prediction router: %w", err)
	}

	return &Module{
		PredictionService: service,
		PredictionRouter:  predictionRouter,
		logger:            logger,
	}, nil
}

// Close shuts down the prediction module. The shared router is closed by the app.
func (m *Module) Close() error {
	m.logger.Info("Prediction module stopped")
	return nil
}
