package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNoBookSelected    = errors.New("no book selected")
	ErrTimerRunning      = errors.New("timer is running")
	ErrInvalidTransition = errors.New("invalid state transition")
)
