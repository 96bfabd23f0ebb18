package predictionhandlers

import "github.com/Black-And-White-Club/scoreline-bot/internal/observability"

// FakeMetrics counts calls and ignores everything else.
type FakeMetrics struct {
	observability.NoOpMetrics
	submitted int
}

func (f *FakeMetrics) RecordPredictionSubmitted() { f.submitted++ }

var _ observability.Metrics = (*FakeMetrics)(nil)
