package sessions

import (
	"context"
	"errors"
	"time"

	conversationdomain "github.com/Black-And-White-Club/scoreline-bot/app/modules/conversation/domain"
)

// ErrNotFound indicates no live session exists for the chat.
var ErrNotFound = errors.New("session not found")

// Store is the session registry. Expired sessions are never returned by Get.
type Store interface {
	Get(ctx context.Context, chatID int64) (conversationdomain.Session, error)
	// Put replaces any session held for s.ChatID.
	Put(ctx context.Context, s conversationdomain.Session) error
	Delete(ctx context.Context, chatID int64) error
	// Sweep removes sessions expired at now and reports how many it removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
	Len(ctx context.Context) (int, error)
}
