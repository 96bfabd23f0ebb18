package events

import "time"

// Chat topics.
const (
	// ChatMessageReceivedV1 is published by the chat gateway for every inbound text message.
	ChatMessageReceivedV1 = "chat.message.received.v1"
	// ChatReplyRequestedV1 asks the chat gateway to deliver a message to a chat.
	ChatReplyRequestedV1 = "chat.reply.requested.v1"
)

// ChatMessageReceivedPayloadV1 is an inbound chat message.
type ChatMessageReceivedPayloadV1 struct {
	ChatID    int64     `json:"chat_id"`
	UserID    int64     `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sent_at"`
}

// ChatReplyRequestedPayloadV1 is an outbound chat message.
type ChatReplyRequestedPayloadV1 struct {
	ChatID   int64  `json:"chat_id"`
	Text     string `json:"text"`
	Markdown bool   `json:"markdown,omitempty"`
}
