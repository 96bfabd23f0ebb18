package conversationservice

import (
	"context"
	"time"

	conversationdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/domain"
	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

// MatchSource supplies the matches open for prediction.
type MatchSource interface {
	Upcoming(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
}

// PredictionSink persists a completed prediction.
type PredictionSink interface {
	Submit(ctx context.Context, p predictiondomain.Prediction) (predictiondomain.Prediction, error)
}

// Participant identifies who is talking in a chat.
type Participant struct {
	ChatID int64
	UserID int64
	// Name is the username, or the first name when there is none.
	Name string
}

// Outcome reports what a handled input changed.
type Outcome struct {
	// Step is the session step after the input. Empty once the session has ended.
	Step conversationdomain.Step
	// Selected is the chosen match, set when a selection was accepted.
	Selected *matchdomain.Match
	// Prediction is the stored prediction, set when the flow completed.
	Prediction *predictiondomain.Prediction
}

// Service is the per-chat prediction flow.
type Service interface {
	Start(ctx context.Context, chatID int64, now time.Time) ([]matchdomain.Match, error)
	Handle(ctx context.Context, p Participant, text string, now time.Time) (Outcome, error)
	Cancel(ctx context.Context, chatID int64) (bool, error)
	Active(ctx context.Context, chatID int64) (bool, error)
	AwaitingEmail(chatID int64) bool
	CaptureEmail(ctx context.Context, chatID int64, text string) (string, error)
}
