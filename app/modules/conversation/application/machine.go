package conversationservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	conversationdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/domain"
	"github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/infrastructure/sessions"
	matchdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/prediction/domain"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Options tunes the Machine.
type Options struct {
	// TTL bounds how long an idle session survives. Zero keeps sessions forever.
	TTL time.Duration
	// RequireEmail gates Start on a captured email address.
	RequireEmail bool
}

// Machine drives the two-step prediction flow: pick a match, then send a score.
type Machine struct {
	matches     MatchSource
	predictions PredictionSink
	store       sessions.Store
	emails      sessions.EmailBook
	opts        Options
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     observability.Metrics
}

var _ Service = (*Machine)(nil)

// NewMachine creates a new Machine.
func NewMachine(
	matches MatchSource,
	predictions PredictionSink,
	store sessions.Store,
	emails sessions.EmailBook,
	opts Options,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.Metrics,
) *Machine {
	return &Machine{
		matches:     matches,
		predictions: predictions,
		store:       store,
		emails:      emails,
		opts:        opts,
		logger:      logger,
		tracer:      tracer,
		metrics:     metrics,
	}
}

// Start opens a session on the current candidate list, replacing any session
// the chat already had. Nothing is stored when there are no candidates.
func (m *Machine) Start(ctx context.Context, chatID int64, now time.Time) ([]matchdomain.Match, error) {
	ctx, span := m.tracer.Start(ctx, "Machine.Start", trace.WithAttributes(attribute.Int64("chat.id", chatID)))
	defer span.End()

	if m.opts.RequireEmail {
		if _, ok := m.emails.Email(chatID); !ok {
			m.emails.MarkPending(chatID)
			return nil, ErrEmailRequired
		}
	}

	candidates, err := m.matches.Upcoming(ctx, now)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load candidate matches: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	sess := conversationdomain.Session{
		ChatID:     chatID,
		Step:       conversationdomain.StepAwaitingMatchSelection,
		Candidates: candidates,
		CreatedAt:  now,
		ExpiresAt:  m.deadline(now),
	}
	if err := m.store.Put(ctx, sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	m.metrics.RecordSessionStarted()
	m.logger.InfoContext(ctx, "Prediction session started",
		slog.Int64("chat_id", chatID),
		slog.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// Handle feeds one free-text input into the chat's session.
func (m *Machine) Handle(ctx context.Context, p Participant, text string, now time.Time) (Outcome, error) {
	ctx, span := m.tracer.Start(ctx, "Machine.Handle", trace.WithAttributes(attribute.Int64("chat.id", p.ChatID)))
	defer span.End()

	sess, err := m.store.Get(ctx, p.ChatID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return Outcome{}, ErrNoSession
		}
		span.RecordError(err)
		return Outcome{}, fmt.Errorf("failed to load session: %w", err)
	}
	span.SetAttributes(attribute.String("session.step", string(sess.Step)))

	switch sess.Step {
	case conversationdomain.StepAwaitingMatchSelection:
		return m.selectMatch(ctx, sess, text, now)
	case conversationdomain.StepAwaitingScoreEntry:
		return m.enterScore(ctx, sess, p, text, now)
	default:
		m.logger.WarnContext(ctx, "Dropping session in unknown step",
			slog.Int64("chat_id", p.ChatID),
			slog.String("step", string(sess.Step)),
		)
		if err := m.store.Delete(ctx, p.ChatID); err != nil {
			return Outcome{}, fmt.Errorf("failed to delete session: %w", err)
		}
		return Outcome{}, ErrNoSession
	}
}

func (m *Machine) selectMatch(ctx context.Context, sess conversationdomain.Session, text string, now time.Time) (Outcome, error) {
	idx, err := conversationdomain.ParseSelection(text, len(sess.Candidates))
	if err != nil {
		m.metrics.RecordRejectedInput("selection")
		return Outcome{Step: sess.Step}, err
	}

	selected := sess.Candidates[idx]
	sess.Selected = &selected
	sess.Step = conversationdomain.StepAwaitingScoreEntry
	sess.ExpiresAt = m.deadline(now)
	if err := m.store.Put(ctx, sess); err != nil {
		return Outcome{}, fmt.Errorf("failed to store session: %w", err)
	}

	return Outcome{Step: sess.Step, Selected: &selected}, nil
}

func (m *Machine) enterScore(ctx context.Context, sess conversationdomain.Session, p Participant, text string, now time.Time) (Outcome, error) {
	score, err := conversationdomain.ParseScore(text)
	if err != nil {
		kind := "score"
		if errors.Is(err, conversationdomain.ErrNegativeScore) {
			kind = "negative_score"
		}
		m.metrics.RecordRejectedInput(kind)
		return Outcome{Step: sess.Step}, err
	}
	if sess.Selected == nil {
		// A score step without a selection cannot complete.
		_ = m.store.Delete(ctx, sess.ChatID)
		return Outcome{}, ErrNoSession
	}

	pred := predictiondomain.Prediction{
		User:       p.Name,
		Match:      sess.Selected.Description(),
		Date:       sess.Selected.Date,
		Prediction: score,
		UserID:     p.UserID,
	}
	ts := now.UTC()
	pred.Timestamp = &ts
	if email, ok := m.emails.Email(sess.ChatID); ok {
		pred.Email = email
	}

	saved, submitErr := m.predictions.Submit(ctx, pred)

	// The session ends whether or not the save worked.
	if err := m.store.Delete(ctx, sess.ChatID); err != nil {
		m.logger.ErrorContext(ctx, "Failed to delete finished session",
			slog.Int64("chat_id", sess.ChatID),
			slog.Any("error", err),
		)
	}

	if submitErr != nil {
		m.metrics.RecordPredictionFailed()
		m.logger.ErrorContext(ctx, "Failed to save prediction",
			slog.Int64("chat_id", sess.ChatID),
			slog.String("match", pred.Match),
			slog.Any("error", submitErr),
		)
		return Outcome{}, fmt.Errorf("%w: %w", ErrSaveFailed, submitErr)
	}

	return Outcome{Prediction: &saved}, nil
}

// Cancel ends the chat's session and reports whether one existed.
func (m *Machine) Cancel(ctx context.Context, chatID int64) (bool, error) {
	active, err := m.Active(ctx, chatID)
	if err != nil {
		return false, err
	}
	if err := m.store.Delete(ctx, chatID); err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return active, nil
}

// Active reports whether the chat has a live session.
func (m *Machine) Active(ctx context.Context, chatID int64) (bool, error) {
	_, err := m.store.Get(ctx, chatID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sessions.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to load session: %w", err)
	}
}

// AwaitingEmail reports whether the chat was asked for an email and has not sent one.
func (m *Machine) AwaitingEmail(chatID int64) bool {
	return m.opts.RequireEmail && m.emails.Pending(chatID)
}

// CaptureEmail validates and stores an email for the chat.
func (m *Machine) CaptureEmail(ctx context.Context, chatID int64, text string) (string, error) {
	email, err := conversationdomain.ValidateEmail(text)
	if err != nil {
		m.metrics.RecordRejectedInput("email")
		return "", err
	}
	m.emails.SetEmail(chatID, email)
	m.logger.InfoContext(ctx, "Email captured", slog.Int64("chat_id", chatID))
	return email, nil
}

func (m *Machine) deadline(now time.Time) time.Time {
	if m.opts.TTL <= 0 {
		return time.Time{}
	}
	return now.Add(m.opts.TTL)
}
