package chatservice

import (
	"context"
	"strings"
	"time"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
)

// MatchQueries is the subset of the match service the dispatcher reads.
type MatchQueries interface {
	Upcoming(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
	Finished(ctx context.Context, now time.Time) ([]matchdomain.Match, error)
}

// PredictionQueries is the subset of the prediction service the dispatcher reads.
type PredictionQueries interface {
	ListForUser(ctx context.Context, userID int64, user string) ([]predictiondomain.Prediction, error)
	GroupedByMatch(ctx context.Context) ([]predictiondomain.MatchGroup, error)
}

// Inbound is one text message received in a chat.
type Inbound struct {
	ChatID    int64
	UserID    int64
	Username  string
	FirstName string
	Text      string
}

// DisplayName is the name predictions are recorded under.
func (in Inbound) DisplayName() string {
	if in.Username != "" {
		return in.Username
	}
	return in.FirstName
}

// Reply is one message to send back to the chat.
type Reply struct {
	Text     string
	Markdown bool
}

// Response is everything a handled message produced.
type Response struct {
	Replies []Reply
	// Submitted is set when the message completed a prediction.
	Submitted *predictiondomain.Prediction
}

func text(s string) Response {
	return Response{Replies: []Reply{{Text: s}}}
}

func markdown(s string) Response {
	return Response{Replies: []Reply{{Text: s, Markdown: true}}}
}

// parseCommand splits "/cmd@bot args" into its lowercased name and trimmed arguments.
func parseCommand(s string) (cmd, args string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") {
		return "", "", false
	}
	cmd, args, _ = strings.Cut(s, " ")
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args), true
}
