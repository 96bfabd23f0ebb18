package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one token bucket per key (client IP, chat id) and prunes
// stale entries inline.
type KeyedLimiter[K comparable] struct {
	entries map[K]*entry
	mu      sync.Mutex
	r       rate.Limit
	b       int
	now     func() time.Time
}

// New creates a KeyedLimiter allowing r events per second with burst b per key.
func New[K comparable](r rate.Limit, b int) *KeyedLimiter[K] {
	return &KeyedLimiter[K]{
		entries: make(map[K]*entry),
		r:       r,
		b:       b,
		now:     time.Now,
	}
}

// GetLimiter returns the limiter for key, pruning stale entries when the map
// exceeds cleanupThreshold.
func (l *KeyedLimiter[K]) GetLimiter(key K) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.entries) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.entries {
			if e.lastSeen.Before(cutoff) {
				delete(l.entries, k)
			}
		}
	}

	e, exists := l.entries[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(l.r, l.b)}
		l.entries[key] = e
	}
	e.lastSeen = now

	return e.limiter
}

// Allow reports whether an event for key may happen now.
func (l *KeyedLimiter[K]) Allow(key K) bool {
	return l.GetLimiter(key).Allow()
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
