package dto

type DeskView struct {
	Seq uint64

	BookID    int64
	BookTitle string

	Playback string
	Revealed string
	Cursor   int
	Length   int
	SpeedMS  int

	StopwatchRunning bool
	ElapsedSeconds   int

	Countdown        string
	RemainingSeconds int
	SessionMinutes   int

	PendingPages int
	PendingNotes string
}

// DeskEvent is published after every desk transition or timer tick.
type DeskEvent struct {
	Kind string
	View DeskView
}

type ImportExcerptInput struct {
	BookID   int64
	Path     string
	Page     int
	MaxRunes int
}

type ImportExcerptOutput struct {
	BookID    int64
	Format    string
	Page      int
	TotalPage int
	Excerpt   string
}
