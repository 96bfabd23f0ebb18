package predictionservice

import (
	"context"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

// Service defines the prediction operations.
type Service interface {
	// Submit stamps p with an id and submission time, then appends it.
	Submit(ctx context.Context, p predictiondomain.Prediction) (predictiondomain.Prediction, error)
	ListAll(ctx context.Context) ([]predictiondomain.Prediction, error)
	// ListForUser returns the predictions made by the given user in insertion order.
	ListForUser(ctx context.Context, userID int64, user string) ([]predictiondomain.Prediction, error)
	GroupedByMatch(ctx context.Context) ([]predictiondomain.MatchGroup, error)
}
