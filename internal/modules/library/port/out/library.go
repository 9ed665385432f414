package out

import (
	"context"

	"readtrack/internal/modules/library/domain"
)

// BookStore loads and saves the whole book collection. Load recovers from
// storage failures itself; Save reports them.
type BookStore interface {
	Load(ctx context.Context) []domain.Book
	Save(ctx context.Context, books []domain.Book) error
}
