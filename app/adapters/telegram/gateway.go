package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scoreline-bot/app/eventbus"
	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BotAPI is the part of *tgbotapi.BotAPI the gateway uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var _ BotAPI = (*tgbotapi.BotAPI)(nil)

// Gateway moves messages between the Telegram Bot API and the event bus:
// incoming updates become chat.message.received events and reply events are
// sent back to their chat.
type Gateway struct {
	bot         BotAPI
	bus         eventbus.EventBus
	logger      *slog.Logger
	tracer      trace.Tracer
	pollTimeout int
}

// NewGateway creates a new Gateway. pollTimeout is the long polling timeout in seconds.
func NewGateway(bot BotAPI, bus eventbus.EventBus, logger *slog.Logger, tracer trace.Tracer, pollTimeout int) *Gateway {
	return &Gateway{
		bot:         bot,
		bus:         bus,
		logger:      logger,
		tracer:      tracer,
		pollTimeout: pollTimeout,
	}
}

// Configure registers the reply handler on router.
func (g *Gateway) Configure(router *message.Router) {
	handlerName := "telegram." + events.ChatReplyRequestedV1
	wrapped := handlerwrapper.WrapTransformingTyped(handlerName, g.logger, g.tracer, g.HandleReplyRequested)

	router.AddNoPublisherHandler(
		handlerName,
		events.ChatReplyRequestedV1,
		g.bus,
		func(msg *message.Message) error {
			_, err := wrapped(msg)
			return err
		},
	)
}

// Run polls Telegram for updates and publishes them until ctx is done.
func (g *Gateway) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = g.pollTimeout
	u.AllowedUpdates = []string{"message"}

	updates := g.bot.GetUpdatesChan(u)
	defer g.bot.StopReceivingUpdates()

	g.logger.InfoContext(ctx, "Telegram gateway polling for updates", slog.Int("timeout_seconds", g.pollTimeout))

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("Telegram gateway stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("telegram updates channel closed")
			}
			if err := g.publishUpdate(ctx, update); err != nil {
				g.logger.ErrorContext(ctx, "Failed to publish chat message",
					slog.Int("update_id", update.UpdateID),
					slog.Any("error", err),
				)
			}
		}
	}
}

func (g *Gateway) publishUpdate(ctx context.Context, update tgbotapi.Update) error {
	payload, ok := ToPayload(update)
	if !ok {
		return nil
	}

	_, span := g.tracer.Start(ctx, "Gateway.publishUpdate", trace.WithAttributes(
		attribute.Int64("chat.id", payload.ChatID),
	))
	defer span.End()

	msg, err := handlerwrapper.NewMessage(handlerwrapper.Result{
		Topic:   events.ChatMessageReceivedV1,
		Payload: payload,
	}, "")
	if err != nil {
		return err
	}
	return g.bus.Publish("", msg)
}

// HandleReplyRequested sends one reply. Send errors are returned so the router
// retries them.
func (g *Gateway) HandleReplyRequested(ctx context.Context, payload *events.ChatReplyRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	_, span := g.tracer.Start(ctx, "Gateway.HandleReplyRequested", trace.WithAttributes(
		attribute.Int64("chat.id", payload.ChatID),
	))
	defer span.End()

	if _, err := g.bot.Send(BuildMessage(payload)); err != nil {
		g.logger.ErrorContext(ctx, "Failed to send Telegram message",
			slog.Int64("chat_id", payload.ChatID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to send message to chat %d: %w", payload.ChatID, err)
	}
	return nil, nil
}

// ToPayload converts a text message update. Other updates report false.
func ToPayload(update tgbotapi.Update) (*events.ChatMessageReceivedPayloadV1, bool) {
	m := update.Message
	if m == nil || m.Chat == nil || m.Text == "" {
		return nil, false
	}

	p := &events.ChatMessageReceivedPayloadV1{
		ChatID: m.Chat.ID,
		Text:   m.Text,
		SentAt: time.Unix(int64(m.Date), 0).UTC(),
	}
	if m.From != nil {
		p.UserID = m.From.ID
		p.Username = m.From.UserName
		p.FirstName = m.From.FirstName
	}
	return p, true
}

// BuildMessage renders a reply with the main keyboard attached.
func BuildMessage(payload *events.ChatReplyRequestedPayloadV1) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(payload.ChatID, payload.Text)
	msg.ReplyMarkup = MainKeyboard()
	if payload.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true
	}
	return msg
}
