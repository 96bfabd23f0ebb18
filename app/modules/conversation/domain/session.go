package conversationdomain

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
)

// Step is the position of a chat inside the prediction flow.
type Step string

const (
	StepAwaitingMatchSelection Step = "awaiting_match_selection"
	StepAwaitingScoreEntry     Step = "awaiting_score_entry"
)

// Session is the per-chat record of prediction-flow progress. Candidates are
// frozen when the flow starts; Selected is set once a valid number arrives.
type Session struct {
	ChatID     int64               `json:"chat_id"`
	Step       Step                `json:"step"`
	Candidates []matchdomain.Match `json:"candidates"`
	Selected   *matchdomain.Match  `json:"selected,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	ExpiresAt  time.Time           `json:"expires_at"`
}

// Expired reports whether the session is past its deadline. A zero deadline never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
