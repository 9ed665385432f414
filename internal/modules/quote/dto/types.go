package dto

import "time"

type AddQuoteInput struct {
	Text   string
	Author string
	Book   string
	BookID int64
	Page   int
	Tags   []string
}

// QuoteOutput carries the quote with its book reference resolved; a
// dangling reference resolves to the unknown-book placeholder.
type QuoteOutput struct {
	ID        int64
	Text      string
	Author    string
	Book      string
	BookID    int64
	Page      int
	Tags      []string
	DateAdded time.Time
}
