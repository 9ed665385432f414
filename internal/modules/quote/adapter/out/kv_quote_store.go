package out

import (
	"context"

	"readtrack/internal/modules/quote/domain"
	quoteout "readtrack/internal/modules/quote/port/out"
	"readtrack/internal/platform/kvstore"
)

const QuotesKey = "reading-app-quotes"

type KVQuoteStore struct {
	store *kvstore.Store
}

func NewKVQuoteStore(store *kvstore.Store) quoteout.QuoteStore {
	return &KVQuoteStore{store: store}
}

func (s *KVQuoteStore) Load(ctx context.Context) []domain.Quote {
	quotes := kvstore.Load[[]domain.Quote](ctx, s.store, QuotesKey, nil)
	if quotes == nil {
		return domain.SeedQuotes()
	}
	return quotes
}

func (s *KVQuoteStore) Save(ctx context.Context, quotes []domain.Quote) error {
	return kvstore.Save(ctx, s.store, QuotesKey, quotes)
}
