package chatservice

import (
	"fmt"
	"strings"

	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgHelp = "Available commands:\n" +
		"/upcoming - see upcoming matches\n" +
		"/finished - see last week's matches\n" +
		"/prediction - make a prediction\n" +
		"/mypredictions - see your predictions\n" +
		"/allpredictions - see everyone's predictions\n" +
		"/cancel - abandon the current prediction\n" +
		"/email <address> - register your email"
	msgWelcome = "Welcome! ⚽\n\n" + msgHelp

	msgNoUpcoming      = "No upcoming matches ⚽"
	msgUpcomingFailed  = "Error loading upcoming matches ❌"
	msgNoFinished      = "No finished matches in the last week 🏁"
	msgFinishedFailed  = "Error loading finished matches ❌"
	msgNoCandidates    = "No future matches available for prediction ⚽"
	msgMatchesFailed   = "Error loading matches ❌"
	msgInvalidChoice   = "❌ Invalid choice. Send a valid match number."
	msgInvalidScore    = "❌ Invalid score. Example: 2-1"
	msgNegativeScore   = "❌ Scores can't be negative. Example: 2-1"
	msgSaveFailed      = "❌ Failed to save prediction."
	msgNoPredictions   = "You have no predictions yet ⚽"
	msgMineFailed      = "❌ Failed to load your predictions."
	msgNobodyPredicted = "No predictions have been made yet ⚽"
	msgAllFailed       = "❌ Failed to load all predictions."
	msgCancelled       = "Prediction cancelled."
	msgNothingToCancel = "Nothing to cancel. Send /prediction to start."
	msgEmailRequired   = "📧 Before predicting, send your email address."
	msgEmailUsage      = "Send your email like: /email you@example.com"
	msgInvalidEmail    = "❌ That doesn't look like an email address. Try again."
	msgEmailSaved      = "✅ Email saved. Send /prediction to start predicting."
	msgGenericFailure  = "Something went wrong ❌ Please try again."
)

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// Characters that end a Markdown link target early.
var linkTargetEscaper = strings.NewReplacer("(", "%28", ")", "%29", " ", "%20")

// flagLink renders a Markdown link to the team flag, or the bare name without one.
func flagLink(team, flag string) string {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return esc(team)
	}
	return fmt.Sprintf("[%s](%s)", esc(team), linkTargetEscaper.Replace(flag))
}

func formatUpcoming(ms []matchdomain.Match) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, fmt.Sprintf("🏟️ %s vs %s\n📅 %s\n🌐 %s vs %s",
			esc(m.HomeTeam), esc(m.AwayTeam), esc(m.Date),
			flagLink(m.HomeTeam, m.HomeFlag), flagLink(m.AwayTeam, m.AwayFlag)))
	}
	return strings.Join(parts, "\n\n")
}

func formatFinished(ms []matchdomain.Match) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		result := "? - ?"
		if m.Score != nil {
			result = fmt.Sprintf("%d - %d", m.Score.Home, m.Score.Away)
		}
		parts = append(parts, fmt.Sprintf("✅ %s vs %s\n📅 %s\n🏁 %s %s %s",
			esc(m.HomeTeam), esc(m.AwayTeam), esc(m.Date),
			flagLink(m.HomeTeam, m.HomeFlag), result, flagLink(m.AwayTeam, m.AwayFlag)))
	}
	return strings.Join(parts, "\n\n")
}

func formatCandidates(ms []matchdomain.Match) string {
	var b strings.Builder
	b.WriteString("🔮 Choose a match to predict by sending its number:\n\n")
	for i, m := range ms {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s (%s)", i+1, m.Description(), m.Date)
	}
	return b.String()
}

func formatSelected(m matchdomain.Match) string {
	return fmt.Sprintf("You selected:\n%s\n\nSend your prediction like: 2-1", m.Description())
}

func formatSaved(p predictiondomain.Prediction) string {
	return fmt.Sprintf("✅ Prediction saved:\n%s\n%d - %d", p.Match, p.Prediction.Home, p.Prediction.Away)
}

func formatMine(preds []predictiondomain.Prediction) string {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		parts = append(parts, fmt.Sprintf("🔮 %s on %s\nPrediction: %d - %d", p.Match, p.Date, p.Prediction.Home, p.Prediction.Away))
	}
	return strings.Join(parts, "\n\n")
}

func formatGroups(groups []predictiondomain.MatchGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		lines := []string{"🏟️ " + g.Match}
		for _, p := range g.Predictions {
			lines = append(lines, fmt.Sprintf("%s: %d-%d", p.User, p.Prediction.Home, p.Prediction.Away))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
