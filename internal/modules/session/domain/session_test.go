package domain

import "testing"

func TestRecentFiltersByBookAndKeepsTail(t *testing.T) {
	t.Parallel()
	sessions := []ReadingSession{
		{ID: 1, BookID: 5, Duration: 25},
		{ID: 2, BookID: 3, Duration: 10},
		{ID: 3, BookID: 5, Duration: 5},
		{ID: 4, BookID: 5, Duration: 60},
	}
	got := Recent(sessions, 5, 2)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 4 {
		t.Fatalf("unexpected tail %+v", got)
	}
	if all := Recent(sessions, 0, 0); len(all) != 4 {
		t.Fatalf("expected every session, got %d", len(all))
	}
	if TotalMinutes(Recent(sessions, 5, 0)) != 90 {
		t.Fatalf("unexpected total for book 5")
	}
}

func TestDraftValidate(t *testing.T) {
	t.Parallel()
	if err := (Draft{BookID: 1, Duration: 25}).Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	if err := (Draft{BookID: 1}).Validate(); err == nil {
		t.Fatalf("zero duration must be rejected")
	}
	if err := (Draft{Duration: 5}).Validate(); err == nil {
		t.Fatalf("missing book must be rejected")
	}
}
