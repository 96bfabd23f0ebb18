package predictionservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	predictiondb "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/infrastructure/repositories"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PredictionService implements Service on top of a Repository.
type PredictionService struct {
	repo   predictiondb.Repository
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(repo predictiondb.Repository, logger *slog.Logger, tracer trace.Tracer) *PredictionService {
	return &PredictionService{
		repo:   repo,
		logger: logger,
		tracer: tracer,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

func (s *PredictionService) Submit(ctx context.Context, p predictiondomain.Prediction) (predictiondomain.Prediction, error) {
	ctx, span := s.tracer.Start(ctx, "PredictionService.Submit")
	defer span.End()

	if p.User == "" || p.Match == "" {
		return predictiondomain.Prediction{}, ErrIncompletePrediction
	}
	if p.Prediction.Home < 0 || p.Prediction.Away < 0 {
		return predictiondomain.Prediction{}, ErrNegativeScore
	}

	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.Timestamp == nil {
		ts := s.now().UTC()
		p.Timestamp = &ts
	}
	span.SetAttributes(
		attribute.String("prediction.id", p.ID),
		attribute.String("prediction.match", p.Match),
	)

	if err := s.repo.Append(ctx, p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		s.logger.ErrorContext(ctx, "Failed to append prediction",
			slog.String("prediction_id", p.ID),
			slog.String("match", p.Match),
			slog.Any("error", err),
		)
		return predictiondomain.Prediction{}, fmt.Errorf("failed to save prediction: %w", err)
	}

	s.logger.InfoContext(ctx, "Prediction saved",
		slog.String("prediction_id", p.ID),
		slog.String("user", p.User),
		slog.String("match", p.Match),
	)
	return p, nil
}

func (s *PredictionService) ListAll(ctx context.Context) ([]predictiondomain.Prediction, error) {
	ctx, span := s.tracer.Start(ctx, "PredictionService.ListAll")
	defer span.End()

	preds, err := s.repo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}
	return preds, nil
}

func (s *PredictionService) ListForUser(ctx context.Context, userID int64, user string) ([]predictiondomain.Prediction, error) {
	preds, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var mine []predictiondomain.Prediction
	for _, p := range preds {
		if p.BelongsTo(userID, user) {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

func (s *PredictionService) GroupedByMatch(ctx context.Context) ([]predictiondomain.MatchGroup, error) {
	preds, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return predictiondomain.GroupByMatch(preds), nil
}
