package matchservice

import (
	"context"
	"time"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
)

// Service answers the match queries the chat and HTTP surfaces need.
type Service interface {
	// ListMatches returns every match in store order.
	ListMatches(ctx context.Context) ([]matchdomain.Match, error)
	// Upcoming returns the matches open for prediction at now, in store order.
	Upcoming(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
	// Finished returns the matches that finished within the lookback before now.
	Finished(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
}
