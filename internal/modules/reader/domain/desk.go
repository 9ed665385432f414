package domain

import "time"

// BookRef is the part of a book the desk reads from.
type BookRef struct {
	ID      int64
	Title   string
	Excerpt string
}

// SessionRecord is what the desk hands over when a countdown expires.
type SessionRecord struct {
	BookID    int64
	Duration  int
	PagesRead int
	Notes     string
}

// Snapshot is the desk state at one transition. Seq grows with every event
// so receivers can tell a late delivery from a current one.
type Snapshot struct {
	Seq uint64

	BookID    int64
	BookTitle string

	Playback PlaybackState
	Revealed string
	Cursor   int
	Length   int
	Speed    time.Duration

	StopwatchRunning bool
	Elapsed          int

	Countdown      CountdownState
	Remaining      int
	SessionMinutes int

	PendingPages int
	PendingNotes string
}

type EventKind string

const (
	EventSelection       EventKind = "selection"
	EventTypewriter      EventKind = "typewriter"
	EventStopwatch       EventKind = "stopwatch"
	EventAccrual         EventKind = "accrual"
	EventCountdown       EventKind = "countdown"
	EventSessionRecorded EventKind = "session_recorded"
)

type Event struct {
	Kind     EventKind
	Snapshot Snapshot
}
