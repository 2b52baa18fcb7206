// AngelaMos | 2026
// errors.go

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// The closed failure taxonomy for every public Manager operation. Callers
// surface these messages directly; nothing retries automatically.
var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountLocked          = errors.New("account temporarily locked after too many failed attempts")
	ErrRegistrationIncomplete = errors.New("registration not completed, set a password first")
	ErrPendingApproval        = errors.New("account is pending admin approval")
	ErrAccountDeactivated     = errors.New("account has been deactivated")
	ErrForbidden              = errors.New("insufficient permissions")
	ErrDuplicateEmail         = errors.New("a user with this email already exists")
	ErrInvalidToken           = errors.New("invalid registration token")
	ErrTokenExpired           = errors.New("registration token has expired")
)

// ValidationError carries every violated field rule, in declaration order.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// RateLimitError communicates the retry window to the caller.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	minutes := int(e.RetryAfter.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf(
		"too many login attempts, try again in %d minutes",
		minutes,
	)
}
