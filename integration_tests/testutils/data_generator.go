package testutils

import (
	"fmt"
	"time"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// TestDataGenerator provides methods to create test data for integration tests
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GeneratePredictions creates count stored-looking predictions spread over a few matches.
func (g *TestDataGenerator) GeneratePredictions(count int) []predictiondomain.Prediction {
	matches := make([]string, 3)
	for i := range matches {
		matches[i] = fmt.Sprintf("%s vs %s", g.faker.Country(), g.faker.Country())
	}

	base := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	preds := make([]predictiondomain.Prediction, count)
	for i := range preds {
		ts := base.Add(time.Duration(i) * time.Minute)
		preds[i] = predictiondomain.Prediction{
			ID:     uuid.NewString(),
			User:   g.faker.Username(),
			UserID: int64(g.faker.Number(1, 1_000_000)),
			Email:  g.faker.Email(),
			Match:  matches[i%len(matches)],
			Date:   base.AddDate(0, 0, 1+i%len(matches)).Format("2006-01-02T15:04:05Z07:00"),
			Prediction: predictiondomain.Score{
				Home: g.faker.Number(0, 5),
				Away: g.faker.Number(0, 5),
			},
			Timestamp: &ts,
		}
	}
	return preds
}
