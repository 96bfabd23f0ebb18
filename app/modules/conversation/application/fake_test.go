package conversationservice

import (
	"context"
	"time"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
)

// ------------------------
// Fake Match Source
// ------------------------

type FakeMatchSource struct {
	trace        []string
	UpcomingFunc func(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
}

func (f *FakeMatchSource) Upcoming(ctx context.Context, now time.Time) ([]matchdomain.Match, error) {
	f.trace = append(f.trace, "Upcoming")
	if f.UpcomingFunc != nil {
		return f.UpcomingFunc(ctx, now)
	}
	return nil, nil
}

func (f *FakeMatchSource) Trace() []string {
	return append([]string(nil), f.trace...)
}

// ------------------------
// Fake Prediction Sink
// ------------------------

type FakePredictionSink struct {
	trace      []string
	submitted  []predictiondomain.Prediction
	SubmitFunc func(ctx context.Context, p predictiondomain.Prediction) (predictiondomain.Prediction, error)
}

func (f *FakePredictionSink) Submit(ctx context.Context, p predictiondomain.Prediction) (predictiondomain.Prediction, error) {
	f.trace = append(f.trace, "Submit")
	if f.SubmitFunc != nil {
		return f.SubmitFunc(ctx, p)
	}
	p.ID = "generated"
	f.submitted = append(f.submitted, p)
	return p, nil
}

func (f *FakePredictionSink) Trace() []string {
	return append([]string(nil), f.trace...)
}

// ------------------------
// Fake Metrics
// ------------------------

type FakeMetrics struct {
	observability.NoOpMetrics
	rejected []string
	started  int
	failed   int
}

func (f *FakeMetrics) RecordRejectedInput(kind string) { f.rejected = append(f.rejected, kind) }
func (f *FakeMetrics) RecordSessionStarted()           { f.started++ }
func (f *FakeMetrics) RecordPredictionFailed()         { f.failed++ }

var (
	_ MatchSource           = (*FakeMatchSource)(nil)
	_ PredictionSink        = (*FakePredictionSink)(nil)
	_ observability.Metrics = (*FakeMetrics)(nil)
)
