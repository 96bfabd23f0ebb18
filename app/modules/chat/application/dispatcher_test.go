package chatservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	conversationservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/application"
	conversationdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/domain"
	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestDispatcher(m *FakeMatchQueries, p *FakePredictionQueries, c *FakeConversation, metrics *FakeMetrics) *Dispatcher {
	d := NewDispatcher(m, p, c, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"), metrics)
	d.now = func() time.Time { return testNow }
	return d
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in, cmd, args string
		ok            bool
	}{
		{in: "/start", cmd: "/start", ok: true},
		{in: "  /Upcoming  ", cmd: "/upcoming", ok: true},
		{in: "/prediction@scoreline_bot", cmd: "/prediction", ok: true},
		{in: "/email  fan@example.com ", cmd: "/email", args: "fan@example.com", ok: true},
		{in: "2-1", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		cmd, args, ok := parseCommand(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.cmd, cmd, tt.in)
		assert.Equal(t, tt.args, args, tt.in)
	}
}

func TestDispatcher_Commands(t *testing.T) {
	upcoming := []matchdomain.Match{
		{HomeTeam: "A", AwayTeam: "B", Date: "2026-10-20", Status: matchdomain.StatusUpcoming, HomeFlag: "https://f/a.png", AwayFlag: "https://f/b.png"},
		{HomeTeam: "Real_Madrid", AwayTeam: "C", Date: "2026-10-21", Status: matchdomain.StatusUpcoming},
	}
	finished := []matchdomain.Match{
		{HomeTeam: "E", AwayTeam: "F", Date: "2026-10-15", Status: matchdomain.StatusFinished, Score: &matchdomain.Score{Home: 3, Away: 1}, HomeFlag: "https://f/e.png", AwayFlag: "https://f/f.png"},
	}
	boom := errors.New("boom")

	tests := []struct {
		name         string
		text         string
		setup        func(*FakeMatchQueries, *FakePredictionQueries, *FakeConversation)
		wantText     string
		wantMarkdown bool
		wantCommand  string
		wantTrace    []string
	}{
		{name: "start", text: "/start", wantText: msgWelcome, wantCommand: "/start"},
		{name: "help", text: "/help", wantText: msgHelp, wantCommand: "/help"},
		{name: "unknown command", text: "/dance", wantText: msgHelp, wantCommand: "unknown"},
		{
			name: "upcoming",
			text: "/upcoming",
			setup: func(m *FakeMatchQueries, _ *FakePredictionQueries, _ *FakeConversation) {
				m.UpcomingFunc = func(context.Context, time.Time) ([]matchdomain.Match, error) { return upcoming, nil }
			},
			wantText: "🏟️ A vs B\n📅 2026-10-20\n🌐 [A](https://f/a.png) vs [B](https://f/b.png)\n\n" +
				"🏟️ Real\\_Madrid vs C\n📅 2026-10-21\n🌐 Real\\_Madrid vs C",
			wantMarkdown: true,
			wantCommand:  "/upcoming",
		},
		{name: "upcoming empty", text: "/upcoming", wantText: msgNoUpcoming, wantCommand: "/upcoming"},
		{
			name: "upcoming error",
			text: "/upcoming",
			setup: func(m *FakeMatchQueries, _ *FakePredictionQueries, _ *FakeConversation) {
				m.UpcomingFunc = func(context.Context, time.Time) ([]matchdomain.Match, error) { return nil, boom }
			},
			wantText:    msgUpcomingFailed,
			wantCommand: "/upcoming",
		},
		{
			name: "finished",
			text: "/finished",
			setup: func(m *FakeMatchQueries, _ *FakePredictionQueries, _ *FakeConversation) {
				m.FinishedFunc = func(context.Context, time.Time) ([]matchdomain.Match, error) { return finished, nil }
			},
			wantText:     "✅ E vs F\n📅 2026-10-15\n🏁 [E](https://f/e.png) 3 - 1 [F](https://f/f.png)",
			wantMarkdown: true,
			wantCommand:  "/finished",
		},
		{name: "finished empty", text: "/finished", wantText: msgNoFinished, wantCommand: "/finished"},
		{
			name: "finished error",
			text: "/finished",
			setup: func(m *FakeMatchQueries, _ *FakePredictionQueries, _ *FakeConversation) {
				m.FinishedFunc = func(context.Context, time.Time) ([]matchdomain.Match, error) { return nil, boom }
			},
			wantText:    msgFinishedFailed,
			wantCommand: "/finished",
		},
		{
			name: "prediction lists candidates",
			text: "/prediction",
			setup: func(_ *FakeMatchQueries, _ *FakePredictionQueries, c *FakeConversation) {
				c.StartFunc = func(context.Context, int64, time.Time) ([]matchdomain.Match, error) { return upcoming, nil }
			},
			wantText:    "🔮 Choose a match to predict by sending its number:\n\n1. A vs B (2026-10-20)\n2. Real_Madrid vs C (2026-10-21)",
			wantCommand: "/prediction",
			wantTrace:   []string{"Start"},
		},
		{
			name: "prediction without candidates",
			text: "/prediction",
			setup: func(_ *FakeMatchQueries, _ *FakePredictionQueries, c *FakeConversation) {
				c.StartFunc = func(context.Context, int64, time.Time) ([]matchdomain.Match, error) {
					return nil, conversationservice.ErrNoCandidates
				}
			},
			wantText:    msgNoCandidates,
			wantCommand: "/prediction",
			wantTrace:   []string{"Start"},
		},
		{
			name: "prediction needs email",
			text: "/prediction",
			setup: func(_ *FakeMatchQueries, _ *FakePredictionQueries, c *FakeConversation) {
				c.StartFunc = func(context.Context, int64, time.Time) ([]matchdomain.Match, error) {
					return nil, conversationservice.ErrEmailRequired
				}
			},
			wantText:    msgEmailRequired,
			wantCommand: "/prediction",
			wantTrace:   []string{"Start"},
		},
		{
			name: "prediction load failure",
			text: "/prediction",
			setup: func(_ *FakeMatchQueries, _ *FakePredictionQueries, c *FakeConversation) {
				c.StartFunc = func(context.Context, int64, time.Time) ([]matchdomain.Match, error) { return nil, boom }
			},
			wantText:    msgMatchesFailed,
			wantCommand: "/prediction",
			wantTrace:   []string{"Start"},
		},
		{
			name: "my predictions",
			text: "/mypredictions",
			setup: func(_ *FakeMatchQueries, p *FakePredictionQueries, _ *FakeConversation) {
				p.ListForUserFunc = func(_ context.Context, userID int64, user string) ([]predictiondomain.Prediction, error) {
					if userID != 42 || user != "alice" {
						return nil, fmt.Errorf("unexpected user %d/%s", userID, user)
					}
					return []predictiondomain.Prediction{
						{Match: "A vs B", Date: "2026-10-20", Prediction: predictiondomain.Score{Home: 2, Away: 1}},
						{Match: "C vs D", Date: "2026-10-21", Prediction: predictiondomain.Score{Home: 0, Away: 0}},
					}, nil
				}
			},
			wantText:    "🔮 A vs B on 2026-10-20\nPrediction: 2 - 1\n\n🔮 C vs D on 2026-10-21\nPrediction: 0 - 0",
			wantCommand: "/mypredictions",
		},
		{name: "my predictions empty", text: "/mypredictions", wantText: msgNoPredictions, wantCommand: "/mypredictions"},
		{
			name: "my predictions error",
			text: "/mypredictions",
			setup: func(_ *FakeMatchQueries, p *FakePredictionQueries, _ *FakeConversation) {
				p.ListForUserFunc = func(context.Context, int64, string) ([]predictiondomain.Prediction, error) { return nil, boom }
			},
			wantText:    msgMineFailed,
			wantCommand: "/mypredictions",
		},
		{
			name: "all predictions grouped",
			text: "/allpredictions",
			setup: func(_ *FakeMatchQueries, p *FakePredictionQueries, _ *FakeConversation) {
				p.GroupedByMatchFunc = func(context.Context) ([]predictiondomain.MatchGroup, error) {
					return predictiondomain.GroupByMatch([]predictiondomain.Prediction{
						{User: "u1", Match: "A vs B", Prediction: predictiondomain.Score{Home: 1, Away: 0}},
						{User: "u2", Match: "C vs D", Prediction: predictiondomain.Score{Home: 2, Away: 2}},
						{User: "u3", Match: "A vs B", Prediction: predictiondomain.Score{Home: 0, Away: 3}},
					}), nil
				}
			},
			wantText:    "🏟️ A vs B\nu1: 1-0\nu3: 0-3\n\n🏟️ C vs D\nu2: 2-2",
			wantCommand: "/allpredictions",
		},
		{name: "all predictions empty", text: "/allpredictions", wantText: msgNobodyPredicted, wantCommand: "/allpredictions"},
		{
			name: "all predictions error",
			text: "/allpredictions",
			setup: func(_ *FakeMatchQueries, p *FakePredictionQueries, _ *FakeConversation) {
				p.GroupedByMatchFunc = func(context.Context) ([]predictiondomain.MatchGroup, error) { return nil, boom }
			},
			wantText:    msgAllFailed,
			wantCommand: "/allpredictions",
		},
		{name: "cancel without session", text: "/cancel", wantText: msgNothingToCancel, wantCommand: "/cancel", wantTrace: []string{"Cancel"}},
		{
			name: "cancel with session",
			text: "/cancel",
			setup: func(_ *FakeMatchQueries, _ *FakePredictionQueries, c *FakeConversation) {
				c.CancelFunc = func(context.Context, int64) (bool, error) { return true, nil }
			},
			wantText:    msgCancelled,
			wantCommand: "/cancel",
			wantTrace:   []string{"Cancel"},
		},
		{name: "email usage", text: "/email", wantText: msgEmailUsage, wantCommand: "/email"},
		{name: "email saved", text: "/email fan@example.com", wantText: msgEmailSaved, wantCommand: "/email", wantTrace: []string{"CaptureEmail"}},
		{
			name: "email invalid",
			text: "/email nope",
			setup: func(_ *FakeMatchQueries, _ *FakePredictionQueries, c *FakeConversation) {
				c.CaptureEmailFunc = func(context.Context, int64, string) (string, error) { return "", conversationdomain.ErrInvalidEmail }
			},
			wantText:    msgInvalidEmail,
			wantCommand: "/email",
			wantTrace:   []string{"CaptureEmail"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, p, c, metrics := &FakeMatchQueries{}, &FakePredictionQueries{}, &FakeConversation{}, &FakeMetrics{}
			if tt.setup != nil {
				tt.setup(m, p, c)
			}
			d := newTestDispatcher(m, p, c, metrics)

			resp := d.Dispatch(context.Background(), Inbound{ChatID: 100, UserID: 42, Username: "alice", Text: tt.text})

			if assert.Len(t, resp.Replies, 1) {
				assert.Equal(t, tt.wantText, resp.Replies[0].Text)
				assert.Equal(t, tt.wantMarkdown, resp.Replies[0].Markdown)
			}
			assert.Nil(t, resp.Submitted)
			assert.Equal(t, []string{tt.wantCommand}, metrics.commands)
			assert.Equal(t, tt.wantTrace, c.Trace(), "commands never feed the state machine")
		})
	}
}

func TestDispatcher_FreeText(t *testing.T) {
	ab := matchdomain.Match{HomeTeam: "A", AwayTeam: "B", Date: "2026-10-20"}
	saved := predictiondomain.Prediction{ID: "p1", Match: "A vs B", Prediction: predictiondomain.Score{Home: 2, Away: 1}}

	tests := []struct {
		name          string
		handleOut     conversationservice.Outcome
		handleErr     error
		awaitingEmail bool
		emailErr      error
		wantText      string
		wantSubmitted bool
		wantTrace     []string
	}{
		{name: "no session is ignored", handleErr: conversationservice.ErrNoSession, wantTrace: []string{"Handle", "AwaitingEmail"}},
		{
			name:          "pending email captured",
			handleErr:     conversationservice.ErrNoSession,
			awaitingEmail: true,
			wantText:      msgEmailSaved,
			wantTrace:     []string{"Handle", "AwaitingEmail", "CaptureEmail"},
		},
		{
			name:          "pending email invalid",
			handleErr:     conversationservice.ErrNoSession,
			awaitingEmail: true,
			emailErr:      conversationdomain.ErrInvalidEmail,
			wantText:      msgInvalidEmail,
			wantTrace:     []string{"Handle", "AwaitingEmail", "CaptureEmail"},
		},
		{name: "selected", handleOut: conversationservice.Outcome{Step: conversationdomain.StepAwaitingScoreEntry, Selected: &ab}, wantText: "You selected:\nA vs B\n\nSend your prediction like: 2-1", wantTrace: []string{"Handle"}},
		{name: "saved", handleOut: conversationservice.Outcome{Prediction: &saved}, wantText: "✅ Prediction saved:\nA vs B\n2 - 1", wantSubmitted: true, wantTrace: []string{"Handle"}},
		{name: "invalid selection", handleErr: conversationdomain.ErrInvalidSelection, wantText: msgInvalidChoice, wantTrace: []string{"Handle"}},
		{name: "invalid score", handleErr: conversationdomain.ErrInvalidScore, wantText: msgInvalidScore, wantTrace: []string{"Handle"}},
		{name: "negative score", handleErr: conversationdomain.ErrNegativeScore, wantText: msgNegativeScore, wantTrace: []string{"Handle"}},
		{name: "save failed", handleErr: fmt.Errorf("%w: disk", conversationservice.ErrSaveFailed), wantText: msgSaveFailed, wantTrace: []string{"Handle"}},
		{name: "store failure", handleErr: errors.New("redis down"), wantText: msgGenericFailure, wantTrace: []string{"Handle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &FakeConversation{
				HandleFunc: func(context.Context, conversationservice.Participant, string, time.Time) (conversationservice.Outcome, error) {
					return tt.handleOut, tt.handleErr
				},
				AwaitingEmailFunc: func(int64) bool { return tt.awaitingEmail },
				CaptureEmailFunc: func(_ context.Context, _ int64, s string) (string, error) {
					return s, tt.emailErr
				},
			}
			metrics := &FakeMetrics{}
			d := newTestDispatcher(&FakeMatchQueries{}, &FakePredictionQueries{}, c, metrics)

			resp := d.Dispatch(context.Background(), Inbound{ChatID: 100, UserID: 42, FirstName: "Alice", Text: "whatever"})

			if tt.wantText == "" {
				assert.Empty(t, resp.Replies)
			} else if assert.Len(t, resp.Replies, 1) {
				assert.Equal(t, tt.wantText, resp.Replies[0].Text)
			}
			assert.Equal(t, tt.wantSubmitted, resp.Submitted != nil)
			assert.Equal(t, tt.wantTrace, c.Trace())
			assert.Empty(t, metrics.commands)
		})
	}
}

func TestDispatcher_FreeTextUsesDisplayName(t *testing.T) {
	var got conversationservice.Participant
	c := &FakeConversation{
		HandleFunc: func(_ context.Context, p conversationservice.Participant, _ string, _ time.Time) (conversationservice.Outcome, error) {
			got = p
			return conversationservice.Outcome{}, nil
		},
	}
	d := newTestDispatcher(&FakeMatchQueries{}, &FakePredictionQueries{}, c, &FakeMetrics{})

	d.Dispatch(context.Background(), Inbound{ChatID: 1, UserID: 2, FirstName: "Alice", Text: "1"})
	assert.Equal(t, conversationservice.Participant{ChatID: 1, UserID: 2, Name: "Alice"}, got)
}
