package domain

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusToRead    Status = "to-read"
	StatusReading   Status = "reading"
	StatusCompleted Status = "completed"
	StatusPaused    Status = "paused"
)

const (
	DefaultGenre = "Uncategorized"
	UnknownTitle = "Unknown Book"
)

type Book struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Genre           string     `json:"genre"`
	Excerpt         string     `json:"excerpt"`
	Pages           int        `json:"pages"`
	Status          Status     `json:"status"`
	ReadingProgress int        `json:"readingProgress"`
	TimeSpent       int        `json:"timeSpent"`
	Rating          int        `json:"rating,omitempty"`
	Notes           string     `json:"notes"`
	Tags            []string   `json:"tags"`
	DateAdded       time.Time  `json:"dateAdded"`
	DateStarted     *time.Time `json:"dateStarted,omitempty"`
	DateFinished    *time.Time `json:"dateFinished,omitempty"`
}

// Draft carries the user supplied fields of a new book.
type Draft struct {
	Title   string
	Author  string
	Genre   string
	Excerpt string
	Pages   int
	Notes   string
	Tags    []string
}

func (s Status) Validate() error {
	switch s {
	case StatusToRead, StatusReading, StatusCompleted, StatusPaused:
		return nil
	default:
		return fmt.Errorf("unsupported status %q", string(s))
	}
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(d.Author) == "" {
		return fmt.Errorf("author is required")
	}
	if d.Pages < 0 {
		return fmt.Errorf("pages must be non-negative")
	}
	return nil
}

func (b Book) Validate() error {
	if b.ID == 0 {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		return fmt.Errorf("author is required")
	}
	if err := b.Status.Validate(); err != nil {
		return err
	}
	if b.ReadingProgress < 0 || b.ReadingProgress > 100 {
		return fmt.Errorf("reading progress must be within 0..100")
	}
	if b.Rating < 0 || b.Rating > 5 {
		return fmt.Errorf("rating must be within 0..5")
	}
	if b.TimeSpent < 0 {
		return fmt.Errorf("time spent must be non-negative")
	}
	return nil
}

// StampDates keeps the lifecycle dates consistent with the status: the
// start date is set the first time the book leaves to-read and the finish
// date only exists while the book is completed.
func (b *Book) StampDates(now time.Time) {
	if b.Status != StatusToRead && b.DateStarted == nil {
		started := now
		b.DateStarted = &started
	}
	switch b.Status {
	case StatusCompleted:
		if b.DateFinished == nil {
			finished := now
			b.DateFinished = &finished
		}
		b.ReadingProgress = 100
	default:
		b.DateFinished = nil
	}
}
