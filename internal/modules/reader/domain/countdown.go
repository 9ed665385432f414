package domain

import (
	"fmt"

	apperrors "readtrack/internal/platform/errors"
)

type CountdownState string

const (
	CountdownIdle    CountdownState = "idle"
	CountdownRunning CountdownState = "running"
	CountdownPaused  CountdownState = "paused"
	CountdownExpired CountdownState = "expired"
)

const (
	MinSessionMinutes     = 5
	MaxSessionMinutes     = 60
	DefaultSessionMinutes = 25
)

// Countdown is a focus timer over a whole number of minutes, ticking in seconds.
type Countdown struct {
	minutes   int
	remaining int
	state     CountdownState
}

func NewCountdown(minutes int) Countdown {
	if minutes < MinSessionMinutes || minutes > MaxSessionMinutes {
		minutes = DefaultSessionMinutes
	}
	return Countdown{minutes: minutes, remaining: minutes * 60, state: CountdownIdle}
}

func (c *Countdown) Start() error {
	if c.state != CountdownIdle && c.state != CountdownPaused {
		return fmt.Errorf("start countdown from %s: %w", c.state, apperrors.ErrInvalidTransition)
	}
	c.state = CountdownRunning
	return nil
}

// Toggle flips between running and a paused hold of the remaining time.
func (c *Countdown) Toggle() error {
	switch c.state {
	case CountdownRunning:
		c.state = CountdownPaused
		return nil
	case CountdownIdle, CountdownPaused:
		c.state = CountdownRunning
		return nil
	default:
		return fmt.Errorf("toggle countdown from %s: %w", c.state, apperrors.ErrInvalidTransition)
	}
}

func (c *Countdown) Reset() {
	c.remaining = c.minutes * 60
	c.state = CountdownIdle
}

func (c *Countdown) SetLength(minutes int) error {
	if c.state == CountdownRunning {
		return fmt.Errorf("change session length: %w", apperrors.ErrTimerRunning)
	}
	if minutes < MinSessionMinutes || minutes > MaxSessionMinutes {
		return fmt.Errorf("session length %d outside %d..%d minutes: %w", minutes, MinSessionMinutes, MaxSessionMinutes, apperrors.ErrInvalidInput)
	}
	c.minutes = minutes
	c.Reset()
	return nil
}

// Tick consumes one second and reports whether this tick expired the timer.
func (c *Countdown) Tick() bool {
	if c.state != CountdownRunning {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.state = CountdownExpired
		return true
	}
	return false
}

func (c Countdown) State() CountdownState { return c.state }
func (c Countdown) Minutes() int          { return c.minutes }
func (c Countdown) Remaining() int        { return c.remaining }
