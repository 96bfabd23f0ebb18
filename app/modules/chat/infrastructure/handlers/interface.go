package chathandlers

import (
	"context"

	"github.com/Black-And-White-Club/scoreline-bot/app/events"
	chatservice "github.com/Black-And-White-Club/scoreline-bot/app/modules/chat/application"
	"github.com/Black-And-White-Club/scoreline-bot/internal/handlerwrapper"
)

// Handlers defines the chat event handlers.
type Handlers interface {
	// HandleMessageReceived dispatches an inbound message and emits the replies.
	HandleMessageReceived(ctx context.Context, payload *events.ChatMessageReceivedPayloadV1) ([]handlerwrapper.Result, error)
}

// Dispatcher turns one inbound message into a response.
type Dispatcher interface {
	Dispatch(ctx context.Context, in chatservice.Inbound) chatservice.Response
}
