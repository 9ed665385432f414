package dto

import "time"

type AddBookInput struct {
	Title   string
	Author  string
	Genre   string
	Excerpt string
	Pages   int
	Notes   string
	Tags    []string
}

// UpdateBookInput replaces the editable fields of a book. Time spent is not
// editable: it only grows through reading sessions.
type UpdateBookInput struct {
	ID              int64
	Title           string
	Author          string
	Genre           string
	Excerpt         string
	Pages           int
	Status          string
	ReadingProgress int
	Rating          int
	Notes           string
	Tags            []string
}

type FilterInput struct {
	Search string
	Status string
	Genre  string
}

type BookOutput struct {
	ID              int64
	Title           string
	Author          string
	Genre           string
	Excerpt         string
	Pages           int
	Status          string
	ReadingProgress int
	TimeSpent       int
	Rating          int
	Notes           string
	Tags            []string
	DateAdded       time.Time
	DateStarted     *time.Time
	DateFinished    *time.Time
}

type StatisticsOutput struct {
	BooksRead        int
	PagesRead        int
	TotalTimeHours   int
	AverageRating    float64
	CurrentlyReading int
	ToRead           int

	Genres     []GenreProgressOutput
	Challenges []ChallengeOutput
}

type GenreProgressOutput struct {
	Genre     string
	Completed int
	Total     int
	Percent   int
}

type ChallengeOutput struct {
	Name    string
	Current int
	Target  int
	Percent int
	Done    bool
}
