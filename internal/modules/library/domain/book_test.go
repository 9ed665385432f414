package domain_test

import (
	"testing"
	"time"

	"readtrack/internal/modules/library/domain"
)

func TestStatusValidate(t *testing.T) {
	t.Parallel()
	if err := domain.Status("reading").Validate(); err != nil {
		t.Fatalf("reading should be valid: %v", err)
	}
	if err := domain.Status("abandoned").Validate(); err == nil {
		t.Fatalf("unknown status should fail")
	}
}

func TestBookValidate(t *testing.T) {
	t.Parallel()
	base := domain.Book{
		ID:        1,
		Title:     "Dune",
		Author:    "Frank Herbert",
		Status:    domain.StatusReading,
		DateAdded: time.Now().UTC(),
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("book should be valid: %v", err)
	}
	missingAuthor := base
	missingAuthor.Author = " "
	if err := missingAuthor.Validate(); err == nil {
		t.Fatalf("missing author should fail")
	}
	badProgress := base
	badProgress.ReadingProgress = 101
	if err := badProgress.Validate(); err == nil {
		t.Fatalf("progress above 100 should fail")
	}
	badRating := base
	badRating.Rating = 6
	if err := badRating.Validate(); err == nil {
		t.Fatalf("rating above 5 should fail")
	}
	missingID := base
	missingID.ID = 0
	if err := missingID.Validate(); err == nil {
		t.Fatalf("missing id should fail")
	}
}

func TestStampDatesFollowsStatus(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	b := domain.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Status: domain.StatusCompleted}
	b.StampDates(now)
	if b.DateStarted == nil || b.DateFinished == nil || !b.DateFinished.Equal(now) {
		t.Fatalf("completed book should carry start and finish dates: %+v", b)
	}
	if b.ReadingProgress != 100 {
		t.Fatalf("completed book should be at 100%%, got %d", b.ReadingProgress)
	}
	b.Status = domain.StatusPaused
	b.StampDates(now.Add(time.Hour))
	if b.DateFinished != nil {
		t.Fatalf("finish date only applies to completed books")
	}
	if !b.DateStarted.Equal(now) {
		t.Fatalf("start date must not move once set")
	}
}

func TestSeedBooksAreValidAndUnique(t *testing.T) {
	t.Parallel()
	seen := map[int64]bool{}
	for _, b := range domain.SeedBooks() {
		if err := b.Validate(); err != nil {
			t.Fatalf("seed %q invalid: %v", b.Title, err)
		}
		if seen[b.ID] {
			t.Fatalf("duplicate seed id %d", b.ID)
		}
		seen[b.ID] = true
	}
}
