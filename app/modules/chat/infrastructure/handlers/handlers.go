package chathandlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	chatservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/chat/application"
	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/scoreline-bot/internal/observability"
	"github.com/Black-And-White-Club/scoreline-bot/internal/ratelimit"
	"go.opentelemetry.io/otel/trace"
)

// ChatHandlers implements Handlers.
type ChatHandlers struct {
	dispatcher Dispatcher
	limiter    *ratelimit.KeyedLimiter[int64]
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    observability.Metrics
}

// NewChatHandlers creates a new ChatHandlers instance. A nil limiter disables
// per-chat rate limiting.
func NewChatHandlers(
	dispatcher Dispatcher,
	limiter *ratelimit.KeyedLimiter[int64],
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.Metrics,
) Handlers {
	return &ChatHandlers{
		dispatcher: dispatcher,
		limiter:    limiter,
		logger:     logger,
		tracer:     tracer,
		metrics:    metrics,
	}
}

func (h *ChatHandlers) HandleMessageReceived(ctx context.Context, payload *events.ChatMessageReceivedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "ChatHandlers.HandleMessageReceived")
	defer span.End()

	if strings.TrimSpace(payload.Text) == "" {
		return nil, nil
	}

	if h.limiter != nil && !h.limiter.Allow(payload.ChatID) {
		h.metrics.RecordRateLimited()
		h.logger.WarnContext(ctx, "Dropping rate limited chat message",
			slog.Int64("chat_id", payload.ChatID),
			slog.Int64("user_id", payload.UserID),
			slog.Time("sent_at", payload.SentAt),
		)
		return nil, nil
	}

	resp := h.dispatcher.Dispatch(ctx, chatservice.Inbound{
		ChatID:    payload.ChatID,
		UserID:    payload.UserID,
		Username:  payload.Username,
		FirstName: payload.FirstName,
		Text:      payload.Text,
	})

	results := make([]handlerwrapper.Result, 0, len(resp.Replies)+1)
	for _, r := range resp.Replies {
		results = append(results, handlerwrapper.Result{
			Topic: events.ChatReplyRequestedV1,
			Payload: &events.ChatReplyRequestedPayloadV1{
				ChatID:   payload.ChatID,
				Text:     r.Text,
				Markdown: r.Markdown,
			},
		})
	}

	if p := resp.Submitted; p != nil {
		submittedAt := time.Now().UTC()
		if p.Timestamp != nil {
			submittedAt = *p.Timestamp
		}
		results = append(results, handlerwrapper.Result{
			Topic: events.PredictionSubmittedV1,
			Payload: &events.PredictionSubmittedPayloadV1{
				PredictionID: p.ID,
				ChatID:       payload.ChatID,
				UserID:       p.UserID,
				User:         p.User,
				Match:        p.Match,
				MatchDate:    p.Date,
				Home:         p.Prediction.Home,
				Away:         p.Prediction.Away,
				SubmittedAt:  submittedAt,
			},
		})
	}

	return results, nil
}
