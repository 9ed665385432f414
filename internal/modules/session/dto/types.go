package dto

import "time"

type SessionInput struct {
	BookID    int64
	Duration  int
	PagesRead int
	Notes     string
}

type ListInput struct {
	BookID int64
	Limit  int
}

type SessionOutput struct {
	ID        int64
	BookID    int64
	BookTitle string
	Date      time.Time
	Duration  int
	PagesRead int
	Notes     string
}

type ExportOutput struct {
	Dir          string
	SessionNotes []string
	BookNotes    []string
}
