package predictionhandlers

import (
	"context"

	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
)

// Handlers defines the prediction event handlers.
type Handlers interface {
	// HandlePredictionSubmitted audits a persisted prediction.
	HandlePredictionSubmitted(ctx context.Context, payload *events.PredictionSubmittedPayloadV1) ([]handlerwrapper.Result, error)
}
