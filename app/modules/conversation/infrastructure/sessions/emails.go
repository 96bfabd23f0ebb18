package sessions

import "sync"

// EmailBook remembers the email captured for each chat and which chats are
// being asked for one.
type EmailBook interface {
	Email(chatID int64) (string, bool)
	SetEmail(chatID int64, email string)
	MarkPending(chatID int64)
	Pending(chatID int64) bool
}

// MemoryEmailBook is a process-local EmailBook. Its content is lost on restart.
type MemoryEmailBook struct {
	mu      sync.RWMutex
	emails  map[int64]string
	pending map[int64]struct{}
}

var _ EmailBook = (*MemoryEmailBook)(nil)

func NewMemoryEmailBook() *MemoryEmailBook {
	return &MemoryEmailBook{
		emails:  make(map[int64]string),
		pending: make(map[int64]struct{}),
	}
}

func (b *MemoryEmailBook) Email(chatID int64) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.emails[chatID]
	return e, ok
}

// SetEmail stores the address and clears the pending flag.
func (b *MemoryEmailBook) SetEmail(chatID int64, email string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emails[chatID] = email
	delete(b.pending, chatID)
}

func (b *MemoryEmailBook) MarkPending(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[chatID] = struct{}{}
}

func (b *MemoryEmailBook) Pending(chatID int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.pending[chatID]
	return ok
}
