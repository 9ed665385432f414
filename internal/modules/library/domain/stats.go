package domain

import (
	"fmt"
	"math"
	"strings"
)

// FilterAll disables the status or genre predicate of a Filter.
const FilterAll = "all"

type Statistics struct {
	BooksRead        int
	PagesRead        int
	TotalTimeHours   int
	AverageRating    float64
	CurrentlyReading int
	ToRead           int
}

func ComputeStatistics(books []Book) Statistics {
	stats := Statistics{}
	totalMinutes := 0
	ratingSum, rated := 0, 0
	for _, b := range books {
		totalMinutes += b.TimeSpent
		switch b.Status {
		case StatusCompleted:
			stats.BooksRead++
			stats.PagesRead += b.Pages
			if b.Rating > 0 {
				ratingSum += b.Rating
				rated++
			}
		case StatusReading:
			stats.CurrentlyReading++
		case StatusToRead:
			stats.ToRead++
		}
	}
	stats.TotalTimeHours = int(math.Round(float64(totalMinutes) / 60))
	if rated > 0 {
		stats.AverageRating = math.Round(float64(ratingSum)/float64(rated)*10) / 10
	}
	return stats
}

type Filter struct {
	Search string
	Status string
	Genre  string
}

func (f Filter) Match(b Book) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Title), needle) && !strings.Contains(strings.ToLower(b.Author), needle) {
			return false
		}
	}
	if f.Status != "" && f.Status != FilterAll && f.Status != string(b.Status) {
		return false
	}
	if f.Genre != "" && f.Genre != FilterAll && f.Genre != b.Genre {
		return false
	}
	return true
}

func FilterBooks(books []Book, f Filter) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// GenreProgress counts the completed books of one genre.
type GenreProgress struct {
	Genre     string
	Completed int
	Total     int
}

func (g GenreProgress) Percent() int {
	if g.Total == 0 {
		return 0
	}
	return int(math.Round(float64(g.Completed) / float64(g.Total) * 100))
}

// ProgressByGenre reports completion per genre in first-occurrence order.
func ProgressByGenre(books []Book) []GenreProgress {
	index := make(map[string]int, len(books))
	out := make([]GenreProgress, 0, len(books))
	for _, b := range books {
		i, ok := index[b.Genre]
		if !ok {
			i = len(out)
			index[b.Genre] = i
			out = append(out, GenreProgress{Genre: b.Genre})
		}
		out[i].Total++
		if b.Status == StatusCompleted {
			out[i].Completed++
		}
	}
	return out
}

// Reading challenge targets.
const (
	BooksGoal  = 20
	PagesGoal  = 5000
	GenresGoal = 10
)

type Challenge struct {
	Name    string
	Current int
	Target  int
}

// Percent may exceed 100 once the target is passed.
func (c Challenge) Percent() int {
	if c.Target <= 0 {
		return 0
	}
	return int(math.Round(float64(c.Current) / float64(c.Target) * 100))
}

func (c Challenge) Done() bool { return c.Current >= c.Target }

// Challenges measures the library against the fixed reading goals: completed
// books, pages of completed books and distinct genres.
func Challenges(stats Statistics, genres int) []Challenge {
	return []Challenge{
		{Name: fmt.Sprintf("Read %d books", BooksGoal), Current: stats.BooksRead, Target: BooksGoal},
		{Name: fmt.Sprintf("Read %d pages", PagesGoal), Current: stats.PagesRead, Target: PagesGoal},
		{Name: fmt.Sprintf("Explore %d genres", GenresGoal), Current: genres, Target: GenresGoal},
	}
}

// UniqueGenres lists distinct genres in first-occurrence order.
func UniqueGenres(books []Book) []string {
	seen := make(map[string]struct{}, len(books))
	out := make([]string, 0, len(books))
	for _, b := range books {
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		out = append(out, b.Genre)
	}
	return out
}
