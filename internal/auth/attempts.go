// AngelaMos | 2026
// attempts.go

package auth

import (
	"context"
	"sync"
	"time"
)

// LoginAttempt is one entry of the in-memory audit trail. Every login call
// that passes input validation is recorded, successful or not.
type LoginAttempt struct {
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
	Success   bool      `json:"success"`
}

// AttemptSink mirrors attempts to durable storage. Optional; the in-memory
// log is always kept.
type AttemptSink interface {
	RecordAttempt(ctx context.Context, attempt LoginAttempt) error
}

const maxRetainedAttempts = 1000

// AttemptLog retains the most recent login attempts in arrival order.
type AttemptLog struct {
	mu       sync.Mutex
	attempts []LoginAttempt
}

func NewAttemptLog() *AttemptLog {
	return &AttemptLog{}
}

func (l *AttemptLog) Record(attempt LoginAttempt) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attempts = append(l.attempts, attempt)
	if len(l.attempts) > maxRetainedAttempts {
		l.attempts = l.attempts[len(l.attempts)-maxRetainedAttempts:]
	}
}

func (l *AttemptLog) All() []LoginAttempt {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LoginAttempt, len(l.attempts))
	copy(out, l.attempts)
	return out
}

func (l *AttemptLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.attempts)
}
