package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"readtrack/internal/modules/library/domain"
	libraryout "readtrack/internal/modules/library/port/out"
	"readtrack/internal/platform/clock"
	"readtrack/internal/platform/id"
)

// BookService owns the in-memory book collection and writes it through to
// the store after every mutation.
type BookService struct {
	clock clock.Clock
	idGen id.Generator
	store libraryout.BookStore
	log   *zap.Logger

	mu    sync.RWMutex
	books []domain.Book
}

func NewBookService(ctx context.Context, clock clock.Clock, idGen id.Generator, store libraryout.BookStore, log *zap.Logger) *BookService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookService{clock: clock, idGen: idGen, store: store, log: log, books: store.Load(ctx)}
}

func (s *BookService) Add(ctx context.Context, draft domain.Draft) (domain.Book, bool) {
	if err := draft.Validate(); err != nil {
		s.log.Debug("book not added", zap.Error(err))
		return domain.Book{}, false
	}
	genre := strings.TrimSpace(draft.Genre)
	if genre == "" {
		genre = domain.DefaultGenre
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	book := domain.Book{
		ID:        s.freshID(),
		Title:     strings.TrimSpace(draft.Title),
		Author:    strings.TrimSpace(draft.Author),
		Genre:     genre,
		Excerpt:   draft.Excerpt,
		Pages:     draft.Pages,
		Status:    domain.StatusToRead,
		Notes:     draft.Notes,
		Tags:      cleanTags(draft.Tags),
		DateAdded: s.clock.Now(),
	}
	s.books = append(s.books, book)
	_ = s.store.Save(ctx, s.books)
	s.log.Info("book added", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	return book, true
}

// Update replaces the stored book with the same id. Time spent and the
// added date are kept from the stored record.
func (s *BookService) Update(ctx context.Context, book domain.Book) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(book.ID)
	if idx < 0 {
		return domain.Book{}, false
	}
	current := s.books[idx]
	book.TimeSpent = current.TimeSpent
	book.DateAdded = current.DateAdded
	if book.DateStarted == nil {
		book.DateStarted = current.DateStarted
	}
	if book.DateFinished == nil {
		book.DateFinished = current.DateFinished
	}
	book.Tags = cleanTags(book.Tags)
	book.StampDates(s.clock.Now())
	if err := book.Validate(); err != nil {
		s.log.Debug("book not updated", zap.Int64("book_id", book.ID), zap.Error(err))
		return domain.Book{}, false
	}
	s.books[idx] = book
	_ = s.store.Save(ctx, s.books)
	return book, true
}

// Delete removes the book. Quotes and sessions pointing at it are left alone.
func (s *BookService) Delete(ctx context.Context, bookID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(bookID)
	if idx < 0 {
		return false
	}
	s.books = append(s.books[:idx:idx], s.books[idx+1:]...)
	_ = s.store.Save(ctx, s.books)
	s.log.Info("book deleted", zap.Int64("book_id", bookID))
	return true
}

func (s *BookService) AddTime(ctx context.Context, bookID int64, minutes int) (domain.Book, bool) {
	if minutes <= 0 {
		return domain.Book{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(bookID)
	if idx < 0 {
		return domain.Book{}, false
	}
	s.books[idx].TimeSpent += minutes
	_ = s.store.Save(ctx, s.books)
	return s.books[idx], true
}

func (s *BookService) SetExcerpt(ctx context.Context, bookID int64, excerpt string) (domain.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(bookID)
	if idx < 0 {
		return domain.Book{}, false
	}
	s.books[idx].Excerpt = excerpt
	_ = s.store.Save(ctx, s.books)
	return s.books[idx], true
}

func (s *BookService) Get(bookID int64) (domain.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(bookID)
	if idx < 0 {
		return domain.Book{}, false
	}
	return s.books[idx], true
}

func (s *BookService) List() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Flush writes the current collection regardless of pending mutations.
func (s *BookService) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Save(ctx, s.books)
}

func (s *BookService) indexOf(bookID int64) int {
	for i := range s.books {
		if s.books[i].ID == bookID {
			return i
		}
	}
	return -1
}

func (s *BookService) freshID() int64 {
	for {
		candidate := s.idGen.New()
		if s.indexOf(candidate) < 0 {
			return candidate
		}
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
