package id

import (
	"sync"

	"readtrack/internal/platform/clock"
)

// Generator creates numeric record identifiers.
type Generator interface {
	New() int64
}

// TimeSequence hands out millisecond timestamps, bumped by one whenever the
// clock has not moved past the last value so ids stay strictly increasing.
type TimeSequence struct {
	clock clock.Clock
	mu    sync.Mutex
	last  int64
}

func NewTimeSequence(clk clock.Clock) *TimeSequence {
	return &TimeSequence{clock: clk}
}

func (g *TimeSequence) New() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := g.clock.Now().UnixMilli()
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return next
}
