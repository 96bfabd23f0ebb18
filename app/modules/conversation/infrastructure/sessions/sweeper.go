package sessions

import (
	"context"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
)

// Sweeper periodically removes abandoned sessions and reports the registry size.
type Sweeper struct {
	store    Store
	interval time.Duration
	logger   *slog.Logger
	metrics  observability.Metrics
	now      func() time.Time
}

// DefaultSweepInterval replaces a non-positive interval.
const DefaultSweepInterval = time.Minute

func NewSweeper(store Store, interval time.Duration, logger *slog.Logger, metrics observability.Metrics) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "Session sweeper started", slog.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce performs a single sweep.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	removed, err := s.store.Sweep(ctx, s.now())
	if err != nil {
		s.logger.ErrorContext(ctx, "Session sweep failed", slog.Any("error", err))
		return
	}
	if removed > 0 {
		s.metrics.RecordSessionsExpired(removed)
		s.logger.InfoContext(ctx, "Expired sessions removed", slog.Int("count", removed))
	}

	n, err := s.store.Len(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to count sessions", slog.Any("error", err))
		return
	}
	s.metrics.SetActiveSessions(n)
}
