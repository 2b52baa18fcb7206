// AngelaMos | 2026
// clock.go

package core

import (
	"time"
)

// Clock abstracts time.Now so expiry and lockout checks are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func SystemClock() Clock {
	return systemClock{}
}
