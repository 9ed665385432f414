package out

import (
	"context"

	"readtrack/internal/modules/library/domain"
	libraryout "readtrack/internal/modules/library/port/out"
	"readtrack/internal/platform/kvstore"
)

const BooksKey = "reading-app-books"

type KVBookStore struct {
	store *kvstore.Store
}

func NewKVBookStore(store *kvstore.Store) libraryout.BookStore {
	return &KVBookStore{store: store}
}

// Load falls back to the seed shelf when nothing usable is stored.
func (s *KVBookStore) Load(ctx context.Context) []domain.Book {
	books := kvstore.Load[[]domain.Book](ctx, s.store, BooksKey, nil)
	if books == nil {
		return domain.SeedBooks()
	}
	return books
}

func (s *KVBookStore) Save(ctx context.Context, books []domain.Book) error {
	return kvstore.Save(ctx, s.store, BooksKey, books)
}
