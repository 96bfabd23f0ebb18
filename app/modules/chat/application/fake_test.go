package chatservice

import (
	"context"
	"time"

	conversationservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/application"
	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
)

// ------------------------
// Fake Match Queries
// ------------------------

type FakeMatchQueries struct {
	trace        []string
	UpcomingFunc func(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
	FinishedFunc func(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
}

func (f *FakeMatchQueries) Upcoming(ctx context.Context, now time.Time) ([]matchdomain.Match, error) {
	f.trace = append(f.trace, "Upcoming")
	if f.UpcomingFunc != nil {
		return f.UpcomingFunc(ctx, now)
	}
	return nil, nil
}

func (f *FakeMatchQueries) Finished(ctx context.Context, now time.Time) ([]matchdomain.Match, error) {
	f.trace = append(f.trace, "Finished")
	if f.FinishedFunc != nil {
		return f.FinishedFunc(ctx, now)
	}
	return nil, nil
}

func (f *FakeMatchQueries) Trace() []string { return append([]string(nil), f.trace...) }

// ------------------------
// Fake Prediction Queries
// ------------------------

type FakePredictionQueries struct {
	trace              []string
	ListForUserFunc    func(ctx context.Context, userID int64, user string) ([]predictiondomain.Prediction, error)
	GroupedByMatchFunc func(ctx context.Context) ([]predictiondomain.MatchGroup, error)
}

func (f *FakePredictionQueries) ListForUser(ctx context.Context, userID int64, user string) ([]predictiondomain.Prediction, error) {
	f.trace = append(f.trace, "ListForUser")
	if f.ListForUserFunc != nil {
		return f.ListForUserFunc(ctx, userID, user)
	}
	return nil, nil
}

func (f *FakePredictionQueries) GroupedByMatch(ctx context.Context) ([]predictiondomain.MatchGroup, error) {
	f.trace = append(f.trace, "GroupedByMatch")
	if f.GroupedByMatchFunc != nil {
		return f.GroupedByMatchFunc(ctx)
	}
	return nil, nil
}

func (f *FakePredictionQueries) Trace() []string { return append([]string(nil), f.trace...) }

// ------------------------
// Fake Conversation
// ------------------------

type FakeConversation struct {
	trace             []string
	StartFunc         func(ctx context.Context, chatID int64, now time.Time) ([]matchdomain.Match, error)
	HandleFunc        func(ctx context.Context, p conversationservice.Participant, text string, now time.Time) (conversationservice.Outcome, error)
	CancelFunc        func(ctx context.Context, chatID int64) (bool, error)
	ActiveFunc        func(ctx context.Context, chatID int64) (bool, error)
	AwaitingEmailFunc func(chatID int64) bool
	CaptureEmailFunc  func(ctx context.Context, chatID int64, text string) (string, error)
}

func (f *FakeConversation) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeConversation) Start(ctx context.Context, chatID int64, now time.Time) ([]matchdomain.Match, error) {
	f.record("Start")
	if f.StartFunc != nil {
		return f.StartFunc(ctx, chatID, now)
	}
	return nil, nil
}

func (f *FakeConversation) Handle(ctx context.Context, p conversationservice.Participant, text string, now time.Time) (conversationservice.Outcome, error) {
	f.record("Handle")
	if f.HandleFunc != nil {
		return f.HandleFunc(ctx, p, text, now)
	}
	return conversationservice.Outcome{}, conversationservice.ErrNoSession
}

func (f *FakeConversation) Cancel(ctx context.Context, chatID int64) (bool, error) {
	f.record("Cancel")
	if f.CancelFunc != nil {
		return f.CancelFunc(ctx, chatID)
	}
	return false, nil
}

func (f *FakeConversation) Active(ctx context.Context, chatID int64) (bool, error) {
	f.record("Active")
	if f.ActiveFunc != nil {
		return f.ActiveFunc(ctx, chatID)
	}
	return false, nil
}

func (f *FakeConversation) AwaitingEmail(chatID int64) bool {
	f.record("AwaitingEmail")
	if f.AwaitingEmailFunc != nil {
		return f.AwaitingEmailFunc(chatID)
	}
	return false
}

func (f *FakeConversation) CaptureEmail(ctx context.Context, chatID int64, text string) (string, error) {
	f.record("CaptureEmail")
	if f.CaptureEmailFunc != nil {
		return f.CaptureEmailFunc(ctx, chatID, text)
	}
	return text, nil
}

func (f *FakeConversation) Trace() []string { return append([]string(nil), f.trace...) }

// ------------------------
// Fake Metrics
// ------------------------

type FakeMetrics struct {
	observability.NoOpMetrics
	commands []string
}

func (f *FakeMetrics) RecordCommand(cmd string) { f.commands = append(f.commands, cmd) }

var (
	_ MatchQueries                = (*FakeMatchQueries)(nil)
	_ PredictionQueries           = (*FakePredictionQueries)(nil)
	_ conversationservice.Service = (*FakeConversation)(nil)
)
