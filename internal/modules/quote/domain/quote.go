package domain

import (
	"fmt"
	"strings"
	"time"
)

// Quote is a saved passage. Book is free text; BookID, when set, is a weak
// reference into the library.
type Quote struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Book      string    `json:"book"`
	BookID    *int64    `json:"bookId,omitempty"`
	Page      int       `json:"page,omitempty"`
	Tags      []string  `json:"tags"`
	DateAdded time.Time `json:"dateAdded"`
}

type Draft struct {
	Text   string
	Author string
	Book   string
	BookID *int64
	Page   int
	Tags   []string
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if strings.TrimSpace(d.Author) == "" {
		return fmt.Errorf("author is required")
	}
	if d.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}
	return nil
}

func SeedQuotes() []Quote {
	ref := func(id int64) *int64 { return &id }
	return []Quote{
		{
			ID:        1,
			Text:      "So we beat on, boats against the current, borne back ceaselessly into the past.",
			Author:    "F. Scott Fitzgerald",
			Book:      "The Great Gatsby",
			BookID:    ref(1),
			DateAdded: time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC),
			Page:      180,
			Tags:      []string{"philosophy", "time", "struggle"},
		},
		{
			ID:        2,
			Text:      "I must not fear. Fear is the mind-killer.",
			Author:    "Frank Herbert",
			Book:      "Dune",
			BookID:    ref(5),
			DateAdded: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			Page:      8,
			Tags:      []string{"courage", "fear", "mental-strength"},
		},
		{
			ID:        3,
			Text:      "You do not rise to the level of your goals. You fall to the level of your systems.",
			Author:    "James Clear",
			Book:      "Atomic Habits",
			BookID:    ref(4),
			DateAdded: time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC),
			Page:      27,
			Tags:      []string{"habits", "systems", "goals"},
		},
	}
}
