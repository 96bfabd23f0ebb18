package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/scoreline-bot/app/eventbus"
	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	"github.com/ThreeDotsLabs/watermill"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textUpdate(chatID int64, from *tgbotapi.User, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			From: from,
			Text: text,
			Date: 1760875200,
		},
	}
}

func TestToPayload(t *testing.T) {
	tests := []struct {
		name   string
		update tgbotapi.Update
		want   *events.ChatMessageReceivedPayloadV1
		ok     bool
	}{
		{
			name:   "text message",
			update: textUpdate(5, &tgbotapi.User{ID: 9, UserName: "alice", FirstName: "Alice"}, "/upcoming"),
			want: &events.ChatMessageReceivedPayloadV1{
				ChatID: 5, UserID: 9, Username: "alice", FirstName: "Alice", Text: "/upcoming",
				SentAt: time.Unix(1760875200, 0).UTC(),
			},
			ok: true,
		},
		{
			name:   "message without sender",
			update: textUpdate(5, nil, "1"),
			want:   &events.ChatMessageReceivedPayloadV1{ChatID: 5, Text: "1", SentAt: time.Unix(1760875200, 0).UTC()},
			ok:     true,
		},
		{name: "no message", update: tgbotapi.Update{UpdateID: 2}},
		{name: "no text", update: textUpdate(5, &tgbotapi.User{ID: 9}, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToPayload(tt.update)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	plain := BuildMessage(&events.ChatReplyRequestedPayloadV1{ChatID: 3, Text: "hi"})
	assert.Equal(t, int64(3), plain.ChatID)
	assert.Equal(t, "hi", plain.Text)
	assert.Empty(t, plain.ParseMode)

	kb, ok := plain.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, kb.ResizeKeyboard)
	assert.False(t, kb.OneTimeKeyboard)
	require.Len(t, kb.Keyboard, 4)
	assert.Equal(t, "/upcoming", kb.Keyboard[0][0].Text)
	assert.Equal(t, "/finished", kb.Keyboard[0][1].Text)
	assert.Equal(t, "/allpredictions", kb.Keyboard[3][0].Text)

	md := BuildMessage(&events.ChatReplyRequestedPayloadV1{ChatID: 3, Text: "*x*", Markdown: true})
	assert.Equal(t, tgbotapi.ModeMarkdown, md.ParseMode)
}

func TestGateway_HandleReplyRequested(t *testing.T) {
	bot := NewFakeBot()
	g := NewGateway(bot, nil, testLogger(), noop.NewTracerProvider().Tracer("test"), 1)

	res, err := g.HandleReplyRequested(context.Background(), &events.ChatReplyRequestedPayloadV1{ChatID: 4, Text: "ok"})
	require.NoError(t, err)
	assert.Nil(t, res)
	require.Len(t, bot.Sent(), 1)
	assert.Equal(t, "ok", bot.Sent()[0].(tgbotapi.MessageConfig).Text)

	bot.SendFunc = func(tgbotapi.Chattable) (tgbotapi.Message, error) {
		return tgbotapi.Message{}, errors.New("network down")
	}
	_, err = g.HandleReplyRequested(context.Background(), &events.ChatReplyRequestedPayloadV1{ChatID: 4, Text: "again"})
	assert.ErrorContains(t, err, "network down")
}

func TestGateway_RunPublishesUpdates(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := eventbus.NewInProcess(watermill.NopLogger{}, testLogger())
	defer bus.Close()

	received, err := bus.Subscribe(ctx, events.ChatMessageReceivedV1)
	require.NoError(t, err)

	bot := NewFakeBot()
	g := NewGateway(bot, bus, testLogger(), noop.NewTracerProvider().Tracer("test"), 1)

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- g.Run(runCtx) }()

	bot.updates <- tgbotapi.Update{UpdateID: 1}
	bot.updates <- textUpdate(11, &tgbotapi.User{ID: 2, UserName: "bob"}, "/prediction")

	select {
	case msg := <-received:
		msg.Ack()
		var got events.ChatMessageReceivedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, int64(11), got.ChatID)
		assert.Equal(t, "bob", got.Username)
		assert.Equal(t, "/prediction", got.Text)
	case <-ctx.Done():
		t.Fatal("timed out waiting for published message")
	}

	stop()
	require.NoError(t, <-done)
	assert.True(t, bot.Stopped())
}

func TestGateway_RunFailsWhenUpdatesClose(t *testing.T) {
	bot := NewFakeBot()
	close(bot.updates)
	g := NewGateway(bot, nil, testLogger(), noop.NewTracerProvider().Tracer("test"), 1)

	assert.Error(t, g.Run(context.Background()))
}
