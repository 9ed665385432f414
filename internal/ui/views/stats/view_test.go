package stats

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	libdto "readtrack/internal/modules/library/dto"
	sessiondto "readtrack/internal/modules/session/dto"
)

type fakePort struct{}

func (fakePort) Statistics(context.Context) libdto.StatisticsOutput {
	return libdto.StatisticsOutput{
		BooksRead: 2,
		PagesRead: 500,
		Genres: []libdto.GenreProgressOutput{
			{Genre: "Fantasy", Completed: 1, Total: 2, Percent: 50},
			{Genre: "Finance", Completed: 0, Total: 1, Percent: 0},
		},
		Challenges: []libdto.ChallengeOutput{
			{Name: "Read 20 books", Current: 2, Target: 20, Percent: 10},
			{Name: "Read 5000 pages", Current: 500, Target: 5000, Percent: 10},
			{Name: "Explore 10 genres", Current: 12, Target: 10, Percent: 120, Done: true},
		},
	}
}

func (fakePort) RecentSessions(context.Context, int) []sessiondto.SessionOutput { return nil }

func TestViewShowsGenreProgressAndChallenges(t *testing.T) {
	t.Parallel()
	m := New(fakePort{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m, _ = m.Update(m.Reload()())

	got := m.View()
	for _, want := range []string{
		"Progress by genre",
		"Fantasy 1/2 books",
		"Finance 0/1 books",
		"Reading challenges",
		"Read 20 books 2/20",
		"Read 5000 pages 500/5,000",
		"Explore 10 genres done",
		"no sessions recorded yet",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("view missing %q:\n%s", want, got)
		}
	}
}

func TestViewShowsSpinnerUntilLoaded(t *testing.T) {
	t.Parallel()
	m := New(fakePort{})
	if got := m.View(); !strings.Contains(got, "loading statistics") {
		t.Fatalf("expected loading state, got %q", got)
	}
}
