package predictiondb

import (
	"context"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

// Repository defines the persistence contract for predictions.
//
// Error semantics:
//   - ListAll on an absent store returns an empty list, not an error
//   - ErrCorruptDocument: the stored document cannot be decoded
//   - other errors: infrastructure failures
type Repository interface {
	ListAll(ctx context.Context) ([]predictiondomain.Prediction, error)
	Append(ctx context.Context, p predictiondomain.Prediction) error
}
