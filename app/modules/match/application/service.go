package matchservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/infrastructure/repositories"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Options tunes the match filters.
type Options struct {
	// Window bounds how far ahead a match may be to count as upcoming. Zero means no bound.
	Window time.Duration
	// Lookback is how far back /finished reaches.
	Lookback time.Duration
	// Location interprets dates that carry no offset.
	Location *time.Location
}

// MatchService implements Service over a match repository.
type MatchService struct {
	repo   matchdb.Repository
	opts   Options
	logger *slog.Logger
	tracer trace.Tracer
}

// NewMatchService creates a new MatchService.
func NewMatchService(repo matchdb.Repository, opts Options, logger *slog.Logger, tracer trace.Tracer) *MatchService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Lookback == 0 {
		opts.Lookback = 7 * 24 * time.Hour
	}
	return &MatchService{repo: repo, opts: opts, logger: logger, tracer: tracer}
}

func (s *MatchService) ListMatches(ctx context.Context) ([]matchdomain.Match, error) {
	ctx, span := s.tracer.Start(ctx, "MatchService.ListMatches")
	defer span.End()

	matches, err := s.repo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	span.SetAttributes(attribute.Int("matches.count", len(matches)))
	return matches, nil
}

func (s *MatchService) Upcoming(ctx context.Context, now time.Time) ([]matchdomain.Match, error) {
	matches, err := s.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	s.logUnparseable(ctx, matches)
	return FilterUpcoming(matches, now, s.opts.Window, s.opts.Location), nil
}

func (s *MatchService) Finished(ctx context.Context, now time.Time) ([]matchdomain.Match, error) {
	matches, err := s.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	s.logUnparseable(ctx, matches)
	return FilterFinished(matches, now, s.opts.Lookback, s.opts.Location), nil
}

func (s *MatchService) logUnparseable(ctx context.Context, matches []matchdomain.Match) {
	for _, m := range matches {
		if _, err := m.Kickoff(s.opts.Location); err != nil {
			s.logger.WarnContext(ctx, "Skipping match with unparseable date",
				slog.String("match", m.Description()),
				slog.String("date", m.Date),
			)
		}
	}
}

// FilterUpcoming keeps UPCOMING matches kicking off at or after now and, when
// window > 0, no later than now+window. Store order is preserved.
func FilterUpcoming(matches []matchdomain.Match, now time.Time, window time.Duration, loc *time.Location) []matchdomain.Match {
	out := make([]matchdomain.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status != matchdomain.StatusUpcoming {
			continue
		}
		kickoff, err := m.Kickoff(loc)
		if err != nil || kickoff.Before(now) {
			continue
		}
		if window > 0 && kickoff.After(now.Add(window)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterFinished keeps FINISHED matches dated within [now-lookback, now].
func FilterFinished(matches []matchdomain.Match, now time.Time, lookback time.Duration, loc *time.Location) []matchdomain.Match {
	from := now.Add(-lookback)
	out := make([]matchdomain.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status != matchdomain.StatusFinished {
			continue
		}
		kickoff, err := m.Kickoff(loc)
		if err != nil || kickoff.Before(from) || kickoff.After(now) {
			continue
		}
		out = append(out, m)
	}
	return out
}
