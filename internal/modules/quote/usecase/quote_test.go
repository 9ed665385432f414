package usecase_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	libraryout "readtrack/internal/modules/library/adapter/out"
	libraryin "readtrack/internal/modules/library/port/in"
	libraryservice "readtrack/internal/modules/library/service"
	libraryusecase "readtrack/internal/modules/library/usecase"
	quoteout "readtrack/internal/modules/quote/adapter/out"
	"readtrack/internal/modules/quote/dto"
	quotein "readtrack/internal/modules/quote/port/in"
	"readtrack/internal/modules/quote/service"
	"readtrack/internal/modules/quote/usecase"
	"readtrack/internal/platform/id"
	"readtrack/internal/platform/kvstore"
)

type fakeClock struct{ at time.Time }

func (f fakeClock) Now() time.Time { return f.at }

func newStack(t *testing.T, provider kvstore.Provider) (libraryin.Usecase, quotein.Usecase) {
	t.Helper()
	ctx := context.Background()
	store := kvstore.New(provider, zap.NewNop())
	clk := fakeClock{at: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)}
	ids := id.NewTimeSequence(clk)
	library := libraryusecase.NewInteractor(libraryservice.NewBookService(ctx, clk, ids, libraryout.NewKVBookStore(store), zap.NewNop()))
	quotes := usecase.NewInteractor(
		service.NewQuoteService(ctx, clk, ids, quoteout.NewKVQuoteStore(store), zap.NewNop()),
		quoteout.NewLibraryTitles(library),
	)
	return library, quotes
}

func TestSeedQuotesLoadWhenStorageEmpty(t *testing.T) {
	t.Parallel()
	_, quotes := newStack(t, kvstore.NewMemoryProvider())
	listed := quotes.ListQuotes(context.Background())
	if len(listed) != 3 {
		t.Fatalf("expected 3 seed quotes, got %d", len(listed))
	}
	if listed[1].Book != "Dune" || listed[1].BookID != 5 {
		t.Fatalf("unexpected seed quote %+v", listed[1])
	}
}

func TestAddQuoteRequiresTextAndAuthor(t *testing.T) {
	t.Parallel()
	provider := kvstore.NewMemoryProvider()
	_, quotes := newStack(t, provider)
	ctx := context.Background()

	if _, ok := quotes.AddQuote(ctx, dto.AddQuoteInput{Author: "Tolkien"}); ok {
		t.Fatalf("quote without text must not be added")
	}
	if _, ok := quotes.AddQuote(ctx, dto.AddQuoteInput{Text: "Not all those who wander are lost."}); ok {
		t.Fatalf("quote without author must not be added")
	}
	added, ok := quotes.AddQuote(ctx, dto.AddQuoteInput{Text: "In a hole in the ground there lived a hobbit.", Author: "J.R.R. Tolkien", BookID: 3, Page: 1})
	if !ok {
		t.Fatalf("valid quote should be added")
	}
	if added.Book != "The Hobbit" {
		t.Fatalf("book title should be filled from the library, got %q", added.Book)
	}

	_, reloaded := newStack(t, provider)
	listed := reloaded.ListQuotes(ctx)
	if len(listed) != 4 || listed[3].ID != added.ID {
		t.Fatalf("quote not persisted: %+v", listed)
	}
}

func TestDeletingBookLeavesQuotesWithUnknownTitle(t *testing.T) {
	t.Parallel()
	library, quotes := newStack(t, kvstore.NewMemoryProvider())
	ctx := context.Background()

	if !library.DeleteBook(ctx, 5) {
		t.Fatalf("delete dune")
	}
	listed := quotes.ListQuotes(ctx)
	if len(listed) != 3 {
		t.Fatalf("quotes must not cascade, got %d", len(listed))
	}
	if listed[1].Book != "Unknown Book" || listed[1].BookID != 5 {
		t.Fatalf("dangling reference should resolve to placeholder, got %+v", listed[1])
	}
}

func TestDeleteQuote(t *testing.T) {
	t.Parallel()
	_, quotes := newStack(t, kvstore.NewMemoryProvider())
	ctx := context.Background()
	if !quotes.DeleteQuote(ctx, 2) {
		t.Fatalf("delete seed quote")
	}
	if quotes.DeleteQuote(ctx, 2) {
		t.Fatalf("second delete should be a no-op")
	}
	if got := len(quotes.ListQuotes(ctx)); got != 2 {
		t.Fatalf("expected 2 quotes, got %d", got)
	}
}
