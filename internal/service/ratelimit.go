package service

import (
	"sync"
	"time"
)

// LoginLimiter caps login attempts per key (client address) within a
// fixed window. It is safe for concurrent use; stale windows are pruned
// as a side effect of Allow, so no background goroutine is needed.
type LoginLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*attemptWindow
}

type attemptWindow struct {
	start time.Time
	count int
}

// NewLoginLimiter allows up to limit attempts per key per window.
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*attemptWindow),
	}
}

// Allow records an attempt for key and reports whether it is within
// the limit.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.prune(now)

	w, ok := l.entries[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.entries[key] = &attemptWindow{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= l.limit
}

// prune drops windows that expired more than one window ago.
func (l *LoginLimiter) prune(now time.Time) {
	cutoff := now.Add(-2 * l.window)
	for key, w := range l.entries {
		if w.start.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}
