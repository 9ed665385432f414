package out

import (
	"context"

	"readtrack/internal/modules/reader/domain"
)

type MarkdownReader interface {
	Read(ctx context.Context, path string) (string, error)
}

type PDFReader interface {
	ReadPage(ctx context.Context, path string, page int) (text string, total int, err error)
}

// BookSource is the desk's view of the library.
type BookSource interface {
	Book(ctx context.Context, bookID int64) (domain.BookRef, bool)
	AddMinutes(ctx context.Context, bookID int64, minutes int) bool
	SetExcerpt(ctx context.Context, bookID int64, excerpt string) bool
}

type SessionSink interface {
	Append(ctx context.Context, record domain.SessionRecord)
}

type Notifier interface {
	Notify(event domain.Event)
}
