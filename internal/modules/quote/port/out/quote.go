package out

import (
	"context"

	"readtrack/internal/modules/quote/domain"
)

type QuoteStore interface {
	Load(ctx context.Context) []domain.Quote
	Save(ctx context.Context, quotes []domain.Quote) error
}

type BookTitles interface {
	ResolveTitle(ctx context.Context, bookID int64) string
}
