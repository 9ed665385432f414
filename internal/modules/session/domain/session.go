package domain

import (
	"fmt"
	"time"
)

const SchemaVersion = 1

// ReadingSession is an immutable record of time spent on a book. BookID is a
// weak reference: the book may have been deleted since.
type ReadingSession struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"bookId"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration"`
	PagesRead int       `json:"pagesRead"`
	Notes     string    `json:"notes"`
}

type Draft struct {
	BookID    int64
	Duration  int
	PagesRead int
	Notes     string
}

// Validate applies to explicit recordings only; appended sessions are never rejected.
func (d Draft) Validate() error {
	if d.BookID == 0 {
		return fmt.Errorf("book id is required")
	}
	if d.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}

// Recent returns sessions for bookID (0 for all books), keeping at most the
// last limit entries in insertion order. A limit <= 0 keeps everything.
func Recent(sessions []ReadingSession, bookID int64, limit int) []ReadingSession {
	out := make([]ReadingSession, 0, len(sessions))
	for _, s := range sessions {
		if bookID != 0 && s.BookID != bookID {
			continue
		}
		out = append(out, s)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// TotalMinutes sums the duration of the given sessions.
func TotalMinutes(sessions []ReadingSession) int {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return total
}
