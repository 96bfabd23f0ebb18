package chatservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	conversationservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/application"
	conversationdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/domain"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Dispatcher maps chat messages to match queries, prediction listings and the
// prediction flow, and renders the replies.
type Dispatcher struct {
	matches      MatchQueries
	predictions  PredictionQueries
	conversation conversationservice.Service
	logger       *slog.Logger
	tracer       trace.Tracer
	metrics      observability.Metrics
	now          func() time.Time
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	matches MatchQueries,
	predictions PredictionQueries,
	conversation conversationservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.Metrics,
) *Dispatcher {
	return &Dispatcher{
		matches:      matches,
		predictions:  predictions,
		conversation: conversation,
		logger:       logger,
		tracer:       tracer,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Dispatch handles one inbound message. Failures are logged and turned into
// user-facing replies; an empty Response means the message is ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, in Inbound) Response {
	ctx, span := d.tracer.Start(ctx, "Dispatcher.Dispatch", trace.WithAttributes(
		attribute.Int64("chat.id", in.ChatID),
	))
	defer span.End()

	cmd, args, ok := parseCommand(in.Text)
	if !ok {
		return d.freeText(ctx, in)
	}
	span.SetAttributes(attribute.String("chat.command", cmd))

	known := true
	var resp Response
	switch cmd {
	case "/start":
		resp = text(msgWelcome)
	case "/help":
		resp = text(msgHelp)
	case "/upcoming":
		resp = d.upcoming(ctx)
	case "/finished":
		resp = d.finished(ctx)
	case "/prediction":
		resp = d.startPrediction(ctx, in)
	case "/mypredictions":
		resp = d.myPredictions(ctx, in)
	case "/allpredictions":
		resp = d.allPredictions(ctx)
	case "/cancel":
		resp = d.cancel(ctx, in)
	case "/email":
		resp = d.email(ctx, in, args)
	default:
		known = false
		resp = text(msgHelp)
	}

	if known {
		d.metrics.RecordCommand(cmd)
	} else {
		d.metrics.RecordCommand("unknown")
	}
	return resp
}

func (d *Dispatcher) upcoming(ctx context.Context) Response {
	ms, err := d.matches.Upcoming(ctx, d.now())
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to load upcoming matches", slog.Any("error", err))
		return text(msgUpcomingFailed)
	}
	if len(ms) == 0 {
		return text(msgNoUpcoming)
	}
	return markdown(formatUpcoming(ms))
}

func (d *Dispatcher) finished(ctx context.Context) Response {
	ms, err := d.matches.Finished(ctx, d.now())
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to load finished matches", slog.Any("error", err))
		return text(msgFinishedFailed)
	}
	if len(ms) == 0 {
		return text(msgNoFinished)
	}
	return markdown(formatFinished(ms))
}

func (d *Dispatcher) startPrediction(ctx context.Context, in Inbound) Response {
	candidates, err := d.conversation.Start(ctx, in.ChatID, d.now())
	switch {
	case err == nil:
		return text(formatCandidates(candidates))
	case errors.Is(err, conversationservice.ErrEmailRequired):
		return text(msgEmailRequired)
	case errors.Is(err, conversationservice.ErrNoCandidates):
		return text(msgNoCandidates)
	default:
		d.logger.ErrorContext(ctx, "Failed to start prediction",
			slog.Int64("chat_id", in.ChatID),
			slog.Any("error", err),
		)
		return text(msgMatchesFailed)
	}
}

func (d *Dispatcher) myPredictions(ctx context.Context, in Inbound) Response {
	preds, err := d.predictions.ListForUser(ctx, in.UserID, in.DisplayName())
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to load user predictions",
			slog.Int64("user_id", in.UserID),
			slog.Any("error", err),
		)
		return text(msgMineFailed)
	}
	if len(preds) == 0 {
		return text(msgNoPredictions)
	}
	return text(formatMine(preds))
}

func (d *Dispatcher) allPredictions(ctx context.Context) Response {
	groups, err := d.predictions.GroupedByMatch(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to load all predictions", slog.Any("error", err))
		return text(msgAllFailed)
	}
	if len(groups) == 0 {
		return text(msgNobodyPredicted)
	}
	return text(formatGroups(groups))
}

func (d *Dispatcher) cancel(ctx context.Context, in Inbound) Response {
	had, err := d.conversation.Cancel(ctx, in.ChatID)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to cancel session",
			slog.Int64("chat_id", in.ChatID),
			slog.Any("error", err),
		)
		return text(msgGenericFailure)
	}
	if !had {
		return text(msgNothingToCancel)
	}
	return text(msgCancelled)
}

func (d *Dispatcher) email(ctx context.Context, in Inbound, args string) Response {
	if args == "" {
		return text(msgEmailUsage)
	}
	return d.captureEmail(ctx, in, args)
}

func (d *Dispatcher) captureEmail(ctx context.Context, in Inbound, s string) Response {
	if _, err := d.conversation.CaptureEmail(ctx, in.ChatID, s); err != nil {
		return text(msgInvalidEmail)
	}
	return text(msgEmailSaved)
}

// freeText routes non-command text: the active session gets it first, then a
// pending email request. Anything else is ignored.
func (d *Dispatcher) freeText(ctx context.Context, in Inbound) Response {
	p := conversationservice.Participant{ChatID: in.ChatID, UserID: in.UserID, Name: in.DisplayName()}

	out, err := d.conversation.Handle(ctx, p, in.Text, d.now())
	switch {
	case err == nil:
	case errors.Is(err, conversationservice.ErrNoSession):
		if d.conversation.AwaitingEmail(in.ChatID) {
			return d.captureEmail(ctx, in, in.Text)
		}
		return Response{}
	case errors.Is(err, conversationdomain.ErrInvalidSelection):
		return text(msgInvalidChoice)
	case errors.Is(err, conversationdomain.ErrNegativeScore):
		return text(msgNegativeScore)
	case errors.Is(err, conversationdomain.ErrInvalidScore):
		return text(msgInvalidScore)
	case errors.Is(err, conversationservice.ErrSaveFailed):
		return text(msgSaveFailed)
	default:
		d.logger.ErrorContext(ctx, "Failed to handle conversation input",
			slog.Int64("chat_id", in.ChatID),
			slog.Any("error", err),
		)
		return text(msgGenericFailure)
	}

	switch {
	case out.Prediction != nil:
		resp := text(formatSaved(*out.Prediction))
		resp.Submitted = out.Prediction
		return resp
	case out.Selected != nil:
		return text(formatSelected(*out.Selected))
	default:
		return Response{}
	}
}
