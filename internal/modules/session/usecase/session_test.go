package usecase_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	sessionout "readtrack/internal/modules/session/adapter/out"
	sessiondto "readtrack/internal/modules/session/dto"
	sessionin "readtrack/internal/modules/session/port/in"
	"readtrack/internal/modules/session/service"
	"readtrack/internal/modules/session/usecase"
	"readtrack/internal/platform/kvstore"
)

type fakeClock struct{ at time.Time }

func (f fakeClock) Now() time.Time { return f.at }

type counterID struct{ next int64 }

func (c *counterID) New() int64 {
	c.next++
	return c.next
}

type fakeCatalog struct {
	titles map[int64]string
	added  map[int64]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{titles: map[int64]string{5: "Dune", 3: "The Hobbit"}, added: map[int64]int{}}
}

func (f *fakeCatalog) ResolveTitle(_ context.Context, bookID int64) string {
	if title, ok := f.titles[bookID]; ok {
		return title
	}
	return "Unknown Book"
}

func (f *fakeCatalog) AddTime(_ context.Context, bookID int64, minutes int) bool {
	if _, ok := f.titles[bookID]; !ok {
		return false
	}
	f.added[bookID] += minutes
	return true
}

func newSessions(t *testing.T, provider kvstore.Provider, catalog *fakeCatalog, vault string) sessionin.Usecase {
	t.Helper()
	ctx := context.Background()
	store := sessionout.NewKVSessionStore(kvstore.New(provider, zap.NewNop()))
	clk := fakeClock{at: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)}
	svc := service.NewSessionService(ctx, clk, &counterID{}, store, zap.NewNop())
	return usecase.NewInteractor(svc, catalog, sessionout.NewVaultNoteWriter(vault), zap.NewNop())
}

func TestAppendSessionNeverRejectsAndPersists(t *testing.T) {
	t.Parallel()
	provider := kvstore.NewMemoryProvider()
	catalog := newFakeCatalog()
	uc := newSessions(t, provider, catalog, t.TempDir())
	ctx := context.Background()

	first := uc.AppendSession(ctx, sessiondto.SessionInput{BookID: 5, Duration: 25, PagesRead: -3})
	if first.PagesRead != 0 {
		t.Fatalf("negative pages must clamp to zero, got %d", first.PagesRead)
	}
	second := uc.AppendSession(ctx, sessiondto.SessionInput{BookID: 404, Duration: 5})
	if first.ID == second.ID {
		t.Fatalf("session ids must be unique")
	}
	if second.BookTitle != "Unknown Book" {
		t.Fatalf("dangling book should resolve to placeholder, got %q", second.BookTitle)
	}
	if len(catalog.added) != 0 {
		t.Fatalf("append must not credit time: %+v", catalog.added)
	}

	reloaded := newSessions(t, provider, catalog, t.TempDir())
	listed := reloaded.ListSessions(ctx, sessiondto.ListInput{})
	if len(listed) != 2 || listed[0].ID != first.ID {
		t.Fatalf("sessions were not persisted in order: %+v", listed)
	}
	if !listed[0].Date.Equal(first.Date) {
		t.Fatalf("date did not survive reload: %v vs %v", listed[0].Date, first.Date)
	}
}

func TestRecordSessionCreditsBookTime(t *testing.T) {
	t.Parallel()
	catalog := newFakeCatalog()
	uc := newSessions(t, kvstore.NewMemoryProvider(), catalog, t.TempDir())
	ctx := context.Background()

	if _, ok := uc.RecordSession(ctx, sessiondto.SessionInput{BookID: 5}); ok {
		t.Fatalf("zero-minute recording must be rejected")
	}
	out, ok := uc.RecordSession(ctx, sessiondto.SessionInput{BookID: 5, Duration: 30, PagesRead: 12, Notes: "Arrakis"})
	if !ok {
		t.Fatalf("recording should succeed")
	}
	if catalog.added[5] != 30 {
		t.Fatalf("expected 30 minutes credited to Dune, got %d", catalog.added[5])
	}
	if out.BookTitle != "Dune" || out.PagesRead != 12 {
		t.Fatalf("unexpected output %+v", out)
	}
	if got := uc.ListSessions(ctx, sessiondto.ListInput{BookID: 3}); len(got) != 0 {
		t.Fatalf("expected no sessions for the hobbit, got %d", len(got))
	}
}

func TestExportNotesRefreshesManagedBlock(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	uc := newSessions(t, kvstore.NewMemoryProvider(), newFakeCatalog(), vault)
	ctx := context.Background()

	uc.AppendSession(ctx, sessiondto.SessionInput{BookID: 5, Duration: 25, Notes: "Litany against fear"})
	exported, err := uc.ExportNotes(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported.SessionNotes) != 1 || len(exported.BookNotes) != 1 {
		t.Fatalf("unexpected export %+v", exported)
	}
	sessionNote, err := os.ReadFile(exported.SessionNotes[0])
	if err != nil {
		t.Fatalf("read session note: %v", err)
	}
	if !strings.Contains(string(sessionNote), "duration_minutes: 25") || !strings.Contains(string(sessionNote), "Litany against fear") {
		t.Fatalf("session note missing fields: %s", sessionNote)
	}

	bookPath := exported.BookNotes[0]
	raw, err := os.ReadFile(bookPath)
	if err != nil {
		t.Fatalf("read book note: %v", err)
	}
	edited := strings.Replace(string(raw), "# Dune\n", "# Dune\n\nMy own thoughts.\n", 1)
	if err := os.WriteFile(bookPath, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit book note: %v", err)
	}

	uc.AppendSession(ctx, sessiondto.SessionInput{BookID: 5, Duration: 10})
	if _, err := uc.ExportNotes(ctx); err != nil {
		t.Fatalf("second export: %v", err)
	}
	raw, err = os.ReadFile(bookPath)
	if err != nil {
		t.Fatalf("reread book note: %v", err)
	}
	note := string(raw)
	if !strings.Contains(note, "My own thoughts.") {
		t.Fatalf("user text was lost: %s", note)
	}
	if !strings.Contains(note, "total_minutes: 35") || strings.Count(note, "readtrack:sessions:start") != 1 {
		t.Fatalf("managed block not refreshed: %s", note)
	}
}
