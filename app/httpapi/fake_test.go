package httpapi

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

type FakeMatchLister struct {
	ListMatchesFunc func(ctx context.Context) ([]matchdomain.Match, error)
}

func (f *FakeMatchLister) ListMatches(ctx context.Context) ([]matchdomain.Match, error) {
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx)
	}
	return nil, nil
}

type FakePredictionLister struct {
	ListAllFunc func(ctx context.Context) ([]predictiondomain.Prediction, error)
}

func (f *FakePredictionLister) ListAll(ctx context.Context) ([]predictiondomain.Prediction, error) {
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx)
	}
	return nil, nil
}
