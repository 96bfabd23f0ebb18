package match

import (
	"context"
	"log/slog"

	matchservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/application"
	matchdb "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the match module. It has no event handlers; the chat and
// HTTP surfaces call its service directly.
type Module struct {
	MatchService matchservice.Service
	logger       *slog.Logger
}

// NewMatchModule creates and initializes the match module.
func NewMatchModule(
	ctx context.Context,
	logger *slog.Logger,
	tracer trace.Tracer,
	repo matchdb.Repository,
	opts matchservice.Options,
) *Module {
	logger.InfoContext(ctx, "match.NewMatchModule initializing",
		slog.Duration("window", opts.Window),
		slog.Duration("lookback", opts.Lookback),
	)

	return &Module{
		MatchService: matchservice.NewMatchService(repo, opts, logger, tracer),
		logger:       logger,
	}
}

// Close shuts down the match module.
func (m *Module) Close() error {
	m.logger.Info("Match module stopped")
	return nil
}
