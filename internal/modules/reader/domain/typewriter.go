package domain

import (
	"fmt"
	"time"

	apperrors "readtrack/internal/platform/errors"
)

type PlaybackState string

const (
	PlaybackIdle     PlaybackState = "idle"
	PlaybackPlaying  PlaybackState = "playing"
	PlaybackPaused   PlaybackState = "paused"
	PlaybackComplete PlaybackState = "complete"
)

const (
	MinSpeed     = 20 * time.Millisecond
	MaxSpeed     = 200 * time.Millisecond
	DefaultSpeed = 100 * time.Millisecond
)

// ClampSpeed bounds the delay between two revealed characters.
func ClampSpeed(d time.Duration) time.Duration {
	if d < MinSpeed {
		return MinSpeed
	}
	if d > MaxSpeed {
		return MaxSpeed
	}
	return d
}

// Typewriter reveals an excerpt one rune per step. It holds no timer; the
// caller decides when Step runs.
type Typewriter struct {
	text   []rune
	cursor int
	state  PlaybackState
}

func NewTypewriter(excerpt string) Typewriter {
	return Typewriter{text: []rune(excerpt), state: PlaybackIdle}
}

// Start begins or resumes playback. An empty excerpt completes at once.
func (t *Typewriter) Start() error {
	if t.state != PlaybackIdle && t.state != PlaybackPaused {
		return fmt.Errorf("start playback from %s: %w", t.state, apperrors.ErrInvalidTransition)
	}
	if t.cursor >= len(t.text) {
		t.state = PlaybackComplete
		return nil
	}
	t.state = PlaybackPlaying
	return nil
}

func (t *Typewriter) Pause() error {
	if t.state != PlaybackPlaying {
		return fmt.Errorf("pause playback from %s: %w", t.state, apperrors.ErrInvalidTransition)
	}
	t.state = PlaybackPaused
	return nil
}

func (t *Typewriter) Reset() {
	t.cursor = 0
	t.state = PlaybackIdle
}

// Step reveals the next rune and reports whether another step is due.
func (t *Typewriter) Step() bool {
	if t.state != PlaybackPlaying {
		return false
	}
	if t.cursor < len(t.text) {
		t.cursor++
	}
	if t.cursor >= len(t.text) {
		t.state = PlaybackComplete
		return false
	}
	return true
}

func (t Typewriter) State() PlaybackState { return t.state }
func (t Typewriter) Cursor() int          { return t.cursor }
func (t Typewriter) Len() int             { return len(t.text) }
func (t Typewriter) Revealed() string     { return string(t.text[:t.cursor]) }
