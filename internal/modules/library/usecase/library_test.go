package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	libraryout "readtrack/internal/modules/library/adapter/out"
	"readtrack/internal/modules/library/domain"
	"readtrack/internal/modules/library/dto"
	libraryin "readtrack/internal/modules/library/port/in"
	"readtrack/internal/modules/library/service"
	"readtrack/internal/modules/library/usecase"
	apperrors "readtrack/internal/platform/errors"
	"readtrack/internal/platform/kvstore"
)

type fakeClock struct{ at time.Time }

func (f fakeClock) Now() time.Time { return f.at }

// fixedID always returns the same value, forcing the collision path.
type fixedID struct{ values []int64 }

func (f *fixedID) New() int64 {
	v := f.values[0]
	if len(f.values) > 1 {
		f.values = f.values[1:]
	}
	return v
}

func newLibrary(t *testing.T, provider kvstore.Provider, ids *fixedID) libraryin.Usecase {
	t.Helper()
	store := libraryout.NewKVBookStore(kvstore.New(provider, zap.NewNop()))
	clk := fakeClock{at: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	svc := service.NewBookService(context.Background(), clk, ids, store, zap.NewNop())
	return usecase.NewInteractor(svc)
}

func TestLoadsSeedWhenStorageEmpty(t *testing.T) {
	t.Parallel()
	uc := newLibrary(t, kvstore.NewMemoryProvider(), &fixedID{values: []int64{100}})
	if got := len(uc.ListBooks(context.Background())); got != 6 {
		t.Fatalf("expected 6 seed books, got %d", got)
	}
}

func TestAddBookValidatesAndAvoidsIDCollisions(t *testing.T) {
	t.Parallel()
	provider := kvstore.NewMemoryProvider()
	uc := newLibrary(t, provider, &fixedID{values: []int64{5, 5, 42}})
	ctx := context.Background()

	if _, ok := uc.AddBook(ctx, dto.AddBookInput{Title: "No Author"}); ok {
		t.Fatalf("book without author must not be added")
	}
	if _, ok := uc.AddBook(ctx, dto.AddBookInput{Author: "Nobody"}); ok {
		t.Fatalf("book without title must not be added")
	}
	if got := len(uc.ListBooks(ctx)); got != 6 {
		t.Fatalf("rejected drafts must not change the shelf, got %d books", got)
	}

	added, ok := uc.AddBook(ctx, dto.AddBookInput{Title: "Kindred", Author: "Octavia Butler", Pages: 264})
	if !ok {
		t.Fatalf("valid draft should be added")
	}
	if added.ID != 42 {
		t.Fatalf("id 5 collides with a seed book, expected 42 got %d", added.ID)
	}
	if added.Status != "to-read" || added.ReadingProgress != 0 || added.TimeSpent != 0 || added.Genre != "Uncategorized" {
		t.Fatalf("unexpected defaults: %+v", added)
	}

	reloaded := newLibrary(t, provider, &fixedID{values: []int64{1000}})
	books := reloaded.ListBooks(ctx)
	if len(books) != 7 || books[6].Title != "Kindred" {
		t.Fatalf("added book was not persisted in order: %+v", books)
	}
}

func TestUpdateBookKeepsTimeSpentAndIgnoresUnknownID(t *testing.T) {
	t.Parallel()
	uc := newLibrary(t, kvstore.NewMemoryProvider(), &fixedID{values: []int64{100}})
	ctx := context.Background()

	if _, ok := uc.UpdateBook(ctx, dto.UpdateBookInput{ID: 999, Title: "x", Author: "y", Status: "reading"}); ok {
		t.Fatalf("update of unknown id must be a no-op")
	}

	dune, err := uc.GetBook(ctx, 5)
	if err != nil {
		t.Fatalf("get dune: %v", err)
	}
	updated, ok := uc.UpdateBook(ctx, dto.UpdateBookInput{
		ID:              5,
		Title:           dune.Title,
		Author:          dune.Author,
		Genre:           dune.Genre,
		Pages:           dune.Pages,
		Status:          "completed",
		ReadingProgress: 80,
		Rating:          4,
	})
	if !ok {
		t.Fatalf("update should succeed")
	}
	if updated.TimeSpent != dune.TimeSpent {
		t.Fatalf("time spent must not change on update: %d vs %d", updated.TimeSpent, dune.TimeSpent)
	}
	if updated.DateFinished == nil || updated.ReadingProgress != 100 {
		t.Fatalf("completing a book should stamp the finish date: %+v", updated)
	}
	if !updated.DateAdded.Equal(dune.DateAdded) {
		t.Fatalf("added date must be kept")
	}
	if _, ok := uc.UpdateBook(ctx, dto.UpdateBookInput{ID: 5, Title: "Dune", Author: "Frank Herbert", Status: "lost"}); ok {
		t.Fatalf("invalid status must be rejected")
	}
}

func TestDeleteBookAndResolveTitle(t *testing.T) {
	t.Parallel()
	uc := newLibrary(t, kvstore.NewMemoryProvider(), &fixedID{values: []int64{100}})
	ctx := context.Background()

	if got := uc.ResolveTitle(ctx, 5); got != "Dune" {
		t.Fatalf("expected Dune, got %q", got)
	}
	if !uc.DeleteBook(ctx, 5) {
		t.Fatalf("delete should succeed")
	}
	if uc.DeleteBook(ctx, 5) {
		t.Fatalf("second delete should be a no-op")
	}
	if got := uc.ResolveTitle(ctx, 5); got != domain.UnknownTitle {
		t.Fatalf("deleted book should resolve to placeholder, got %q", got)
	}
	if _, err := uc.GetBook(ctx, 5); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddTimeOnlyGrows(t *testing.T) {
	t.Parallel()
	uc := newLibrary(t, kvstore.NewMemoryProvider(), &fixedID{values: []int64{100}})
	ctx := context.Background()

	book, ok := uc.AddTime(ctx, 3, 1)
	if !ok || book.TimeSpent != 1 {
		t.Fatalf("expected 1 minute on the hobbit, got %+v", book)
	}
	if _, ok := uc.AddTime(ctx, 3, -10); ok {
		t.Fatalf("negative time must be rejected")
	}
	if _, ok := uc.AddTime(ctx, 404, 1); ok {
		t.Fatalf("unknown book must be a no-op")
	}
}

func TestRoundTripThroughSQLiteKeepsDates(t *testing.T) {
	t.Parallel()
	provider, err := kvstore.NewSQLiteProvider(context.Background(), t.TempDir()+"/kv.db")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer provider.Close()

	first := newLibrary(t, provider, &fixedID{values: []int64{100}})
	if err := first.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	before := first.ListBooks(context.Background())

	second := newLibrary(t, provider, &fixedID{values: []int64{100}})
	after := second.ListBooks(context.Background())
	if len(before) != len(after) {
		t.Fatalf("length mismatch %d vs %d", len(before), len(after))
	}
	for i := range before {
		b, a := before[i], after[i]
		if b.ID != a.ID || b.Title != a.Title || b.Status != a.Status || b.TimeSpent != a.TimeSpent || b.Rating != a.Rating {
			t.Fatalf("field mismatch at %d: %+v vs %+v", i, b, a)
		}
		if !b.DateAdded.Equal(a.DateAdded) {
			t.Fatalf("dateAdded mismatch at %d", i)
		}
		if (b.DateFinished == nil) != (a.DateFinished == nil) {
			t.Fatalf("dateFinished presence mismatch at %d", i)
		}
		if b.DateFinished != nil && !b.DateFinished.Equal(*a.DateFinished) {
			t.Fatalf("dateFinished mismatch at %d", i)
		}
	}
}

func TestStatisticsAndGenres(t *testing.T) {
	t.Parallel()
	uc := newLibrary(t, kvstore.NewMemoryProvider(), &fixedID{values: []int64{100}})
	ctx := context.Background()
	stats := uc.Statistics(ctx)
	if stats.BooksRead != 2 || stats.PagesRead != 500 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(stats.Genres) != 6 || stats.Genres[0] != (dto.GenreProgressOutput{Genre: "Classic Literature", Completed: 1, Total: 1, Percent: 100}) {
		t.Fatalf("unexpected genre progress %+v", stats.Genres)
	}
	if len(stats.Challenges) != 3 || stats.Challenges[2].Current != 6 || stats.Challenges[2].Percent != 60 {
		t.Fatalf("unexpected challenges %+v", stats.Challenges)
	}
	genres := uc.UniqueGenres(ctx)
	if len(genres) != 6 || genres[0] != "Classic Literature" {
		t.Fatalf("unexpected genres %v", genres)
	}
	if got := uc.FilterBooks(ctx, dto.FilterInput{Status: "all", Genre: "all"}); len(got) != 6 {
		t.Fatalf("identity filter should keep all books, got %d", len(got))
	}
}

type brokenProvider struct{ kvstore.Provider }

func (brokenProvider) Set(context.Context, string, string) error {
	return errors.New("read-only volume")
}

func TestFlushReportsWriteFailure(t *testing.T) {
	t.Parallel()
	uc := newLibrary(t, brokenProvider{kvstore.NewMemoryProvider()}, &fixedID{values: []int64{100}})

	err := uc.Flush(context.Background())
	if err == nil || !strings.Contains(err.Error(), "flush books") {
		t.Fatalf("expected flush error, got %v", err)
	}
	if _, ok := uc.AddBook(context.Background(), dto.AddBookInput{Title: "Emma", Author: "Jane Austen"}); !ok {
		t.Fatalf("mutations must keep working while writes fail")
	}
}
