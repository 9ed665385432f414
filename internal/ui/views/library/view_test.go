package library

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	libraryin "readtrack/internal/modules/library/adapter/in"
	libraryout "readtrack/internal/modules/library/adapter/out"
	libdto "readtrack/internal/modules/library/dto"
	"readtrack/internal/modules/library/service"
	"readtrack/internal/modules/library/usecase"
	"readtrack/internal/platform/kvstore"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

type counterID struct{ next int64 }

func (c *counterID) New() int64 {
	c.next++
	return c.next
}

func newSeededView(t *testing.T) Model {
	t.Helper()
	store := libraryout.NewKVBookStore(kvstore.New(kvstore.NewMemoryProvider(), zap.NewNop()))
	svc := service.NewBookService(context.Background(), fixedClock{}, &counterID{next: 1000}, store, zap.NewNop())
	m := New(libraryin.NewCLIHandler(usecase.NewInteractor(svc)))
	return load(t, m)
}

func load(t *testing.T, m Model) Model {
	t.Helper()
	msg, ok := m.Reload()().(BooksLoadedMsg)
	if !ok {
		t.Fatalf("reload should produce BooksLoadedMsg")
	}
	m, _ = m.Update(msg)
	return m
}

func typeSearch(m Model, term string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	for _, r := range term {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func titles(m Model) []string {
	var out []string
	for _, item := range m.list.Items() {
		out = append(out, item.(bookItem).book.Title)
	}
	return out
}

func TestSearchMatchesSubstringsOnly(t *testing.T) {
	t.Parallel()
	m := load(t, typeSearch(newSeededView(t), "gtsb"))

	if !m.Filtering() {
		t.Fatalf("search field should keep focus while typing")
	}
	if got := titles(m); len(got) != 0 {
		t.Fatalf("scattered letters must not match, got %v", got)
	}
}

func TestSearchIsCaseInsensitiveAndKeepsLibraryOrder(t *testing.T) {
	t.Parallel()
	m := load(t, typeSearch(newSeededView(t), "GA"))

	got := titles(m)
	if len(got) != 2 || got[0] != "The Great Gatsby" || got[1] != "The Psychology of Money" {
		t.Fatalf("unexpected matches %v", got)
	}
}

func TestSearchMatchesAuthor(t *testing.T) {
	t.Parallel()
	m := load(t, typeSearch(newSeededView(t), "austen"))

	got := titles(m)
	if len(got) != 1 || got[0] != "Pride and Prejudice" {
		t.Fatalf("unexpected matches %v", got)
	}
}

func TestSearchEscClearsTerm(t *testing.T) {
	t.Parallel()
	m := typeSearch(newSeededView(t), "dune")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = load(t, m)

	if m.Filtering() {
		t.Fatalf("esc should leave the search field")
	}
	if got := titles(m); len(got) != 6 {
		t.Fatalf("expected the full library after esc, got %v", got)
	}
}

type notesPort struct{}

func (notesPort) FilterBooks(context.Context, string, string, string) []libdto.BookOutput {
	return []libdto.BookOutput{{ID: 1, Title: "Dune", Author: "Frank Herbert", Status: "reading", Notes: "**Loved** the _worldbuilding_"}}
}
func (notesPort) UniqueGenres(context.Context) []string { return nil }

func TestDetailRendersNotesAsMarkdown(t *testing.T) {
	t.Parallel()
	m := load(t, New(notesPort{}))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	got := m.renderDetail()
	if !strings.Contains(got, "Loved") || !strings.Contains(got, "worldbuilding") {
		t.Fatalf("notes missing from detail:\n%s", got)
	}
	if strings.Contains(got, "**") || strings.Contains(got, "_worldbuilding_") {
		t.Fatalf("markdown markers should be rendered away:\n%s", got)
	}
}
