package out

import (
	"context"

	libraryin "readtrack/internal/modules/library/port/in"
	quoteout "readtrack/internal/modules/quote/port/out"
)

type LibraryTitles struct {
	library libraryin.Usecase
}

func NewLibraryTitles(library libraryin.Usecase) quoteout.BookTitles {
	return &LibraryTitles{library: library}
}

func (a *LibraryTitles) ResolveTitle(ctx context.Context, bookID int64) string {
	return a.library.ResolveTitle(ctx, bookID)
}
