// AngelaMos | 2026
// fixedwindow.go

package ratelimit

import (
	"sync"
	"time"

	"github.com/campaignhq/campaign-backend/internal/core"
)

type window struct {
	count     int
	resetTime time.Time
}

// Limiter is a fixed-window attempt counter keyed by arbitrary string.
// State lives for the process lifetime; nothing is persisted.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	clock   core.Clock
}

func New(clock core.Clock) *Limiter {
	if clock == nil {
		clock = core.SystemClock()
	}
	return &Limiter{
		windows: make(map[string]*window),
		clock:   clock,
	}
}

// Allow reports whether another attempt is permitted for the key. The first
// call of a fresh or expired window starts a new one with count=1. Within a
// window each call increments the count; once the count reaches maxAttempts
// every further call is refused until the window expires. The window does
// not slide.
func (l *Limiter) Allow(key string, maxAttempts int, windowDur time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetTime) {
		l.windows[key] = &window{
			count:     1,
			resetTime: now.Add(windowDur),
		}
		return true
	}

	if w.count >= maxAttempts {
		return false
	}

	w.count++
	return true
}

// Remaining reports how many attempts are left in the key's current window.
func (l *Limiter) Remaining(key string, maxAttempts int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.clock.Now().After(w.resetTime) {
		return maxAttempts
	}

	remaining := maxAttempts - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset discards the key's window.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, key)
}
