// Package sched provides the delay primitive the reading desk builds its
// timers on, plus a manual implementation that advances virtual time.
package sched

import (
	"time"

	"readtrack/internal/platform/clock"
)

// Handle is a pending callback. Stop reports whether the call was prevented.
type Handle interface {
	Stop() bool
}

// Scheduler runs fn once after d and tells the current time.
type Scheduler interface {
	clock.Clock
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real schedules on the runtime timer heap; callbacks run on their own goroutine.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

func (Real) AfterFunc(d time.Duration, fn func()) Handle {
	return time.AfterFunc(d, fn)
}
