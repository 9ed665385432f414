package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	readerout "readtrack/internal/modules/reader/adapter/out"
	"readtrack/internal/modules/reader/domain"
	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
	"readtrack/internal/modules/reader/service"
	"readtrack/internal/modules/reader/usecase"
	apperrors "readtrack/internal/platform/errors"
	"readtrack/internal/platform/sched"
)

type fakeBooks struct {
	books map[int64]domain.BookRef
}

func (f *fakeBooks) Book(_ context.Context, bookID int64) (domain.BookRef, bool) {
	b, ok := f.books[bookID]
	return b, ok
}

func (f *fakeBooks) AddMinutes(context.Context, int64, int) bool { return true }

func (f *fakeBooks) SetExcerpt(_ context.Context, bookID int64, excerpt string) bool {
	b, ok := f.books[bookID]
	if !ok {
		return false
	}
	b.Excerpt = excerpt
	f.books[bookID] = b
	return true
}

type fakePDF struct{}

func (fakePDF) ReadPage(context.Context, string, int) (string, int, error) {
	return "  Call me   Ishmael. Some years ago ", 3, nil
}

type nopSink struct{}

func (nopSink) Append(context.Context, domain.SessionRecord) {}

func newReader(t *testing.T, clock *sched.Manual) (readerin.Usecase, *fakeBooks) {
	t.Helper()
	books := &fakeBooks{books: map[int64]domain.BookRef{7: {ID: 7, Title: "Moby-Dick", Excerpt: "old"}}}
	events := usecase.NewEvents()
	desk := service.NewDesk(context.Background(), clock, books, nopSink{}, events, 50*time.Millisecond, 25, nil)
	importer := service.NewExcerptImporter(readerout.NewLocalMarkdownReader(), fakePDF{}, books)
	return usecase.NewInteractor(desk, importer, events), books
}

func TestImportExcerptFromMarkdownDropsFrontmatterAndHeadings(t *testing.T) {
	t.Parallel()
	clock := sched.NewManual(time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC))
	uc, books := newReader(t, clock)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chapter.md")
	content := "---\ntitle: Loomings\n---\n# Chapter 1\n\nCall me Ishmael.\nSome years ago, never mind how long precisely.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write chapter: %v", err)
	}

	if err := uc.SelectBook(ctx, 7); err != nil {
		t.Fatalf("select: %v", err)
	}
	out, err := uc.ImportExcerpt(ctx, dto.ImportExcerptInput{BookID: 7, Path: path, MaxRunes: 30})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Excerpt != "Call me Ishmael. Some years" || out.Format != "text" {
		t.Fatalf("unexpected excerpt %+v", out)
	}
	if books.books[7].Excerpt != out.Excerpt {
		t.Fatalf("excerpt was not stored on the book")
	}
	if view := uc.View(ctx); view.Length != len([]rune(out.Excerpt)) {
		t.Fatalf("desk should pick up the new excerpt, got length %d", view.Length)
	}
}

func TestImportExcerptFromPDFAndErrors(t *testing.T) {
	t.Parallel()
	uc, _ := newReader(t, sched.NewManual(time.Now()))
	ctx := context.Background()

	out, err := uc.ImportExcerpt(ctx, dto.ImportExcerptInput{BookID: 7, Path: "/books/moby.pdf", Page: 2})
	if err != nil {
		t.Fatalf("import pdf: %v", err)
	}
	if out.Format != "pdf" || out.Page != 2 || out.TotalPage != 3 || out.Excerpt != "Call me Ishmael. Some years ago" {
		t.Fatalf("unexpected pdf import %+v", out)
	}
	if _, err := uc.ImportExcerpt(ctx, dto.ImportExcerptInput{BookID: 8, Path: "/books/moby.pdf"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.ImportExcerpt(ctx, dto.ImportExcerptInput{BookID: 7}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSubscribersReceiveDeskEvents(t *testing.T) {
	t.Parallel()
	clock := sched.NewManual(time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC))
	uc, _ := newReader(t, clock)
	ctx := context.Background()

	var kinds []string
	unsubscribe := uc.Subscribe(func(e dto.DeskEvent) { kinds = append(kinds, e.Kind) })
	_ = uc.SelectBook(ctx, 7)
	if err := uc.StartReading(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	clock.Advance(50 * time.Millisecond)
	unsubscribe()
	clock.Advance(time.Second)

	got := strings.Join(kinds, ",")
	if got != "selection,stopwatch,typewriter" {
		t.Fatalf("unexpected events %q", got)
	}
	if view := uc.View(ctx); view.Revealed != "old" || view.SpeedMS != 50 {
		t.Fatalf("unexpected view %+v", view)
	}
	if applied := uc.SetSpeed(ctx, 500); applied != 200 {
		t.Fatalf("speed should clamp to 200ms, got %d", applied)
	}
	uc.Close()
}

func TestEventsDropsOlderSnapshots(t *testing.T) {
	t.Parallel()
	events := usecase.NewEvents()
	var got []string
	events.Subscribe(func(e dto.DeskEvent) { got = append(got, e.View.Playback) })

	events.Notify(domain.Event{Kind: domain.EventStopwatch, Snapshot: domain.Snapshot{Seq: 2, Playback: domain.PlaybackPaused}})
	events.Notify(domain.Event{Kind: domain.EventTypewriter, Snapshot: domain.Snapshot{Seq: 1, Playback: domain.PlaybackPlaying}})
	events.Notify(domain.Event{Kind: domain.EventStopwatch, Snapshot: domain.Snapshot{Seq: 2, Playback: domain.PlaybackPlaying}})

	if len(got) != 1 || got[0] != "paused" {
		t.Fatalf("expected only the newest snapshot, got %v", got)
	}
}

func TestPauseDuringSlowDeliveryEndsPaused(t *testing.T) {
	t.Parallel()
	clock := sched.NewManual(time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC))
	uc, _ := newReader(t, clock)
	ctx := context.Background()
	if err := uc.SelectBook(ctx, 7); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := uc.StartReading(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	var (
		mu      sync.Mutex
		blocked bool
		last    dto.DeskView
		seqs    []uint64
	)
	uc.Subscribe(func(e dto.DeskEvent) {
		if e.Kind == "typewriter" && !blocked {
			blocked = true
			close(entered)
			<-release
		}
		mu.Lock()
		last = e.View
		seqs = append(seqs, e.View.Seq)
		mu.Unlock()
	})

	advanced := make(chan struct{})
	go func() {
		clock.Advance(50 * time.Millisecond)
		close(advanced)
	}()
	<-entered

	paused := make(chan error, 1)
	go func() { paused <- uc.PauseReading(ctx) }()
	close(release)
	<-advanced
	if err := <-paused; err != nil {
		t.Fatalf("pause: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if last.Playback != "paused" || last.StopwatchRunning {
		t.Fatalf("last delivered view should be paused, got %+v", last)
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Fatalf("deliveries out of order: %v", seqs)
		}
	}
	uc.Close()
}
