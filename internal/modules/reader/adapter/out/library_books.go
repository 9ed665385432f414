package out

import (
	"context"

	libraryin "readtrack/internal/modules/library/port/in"
	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
)

type LibraryBooks struct {
	library libraryin.Usecase
}

func NewLibraryBooks(library libraryin.Usecase) readerout.BookSource {
	return &LibraryBooks{library: library}
}

func (a *LibraryBooks) Book(ctx context.Context, bookID int64) (domain.BookRef, bool) {
	book, err := a.library.GetBook(ctx, bookID)
	if err != nil {
		return domain.BookRef{}, false
	}
	return domain.BookRef{ID: book.ID, Title: book.Title, Excerpt: book.Excerpt}, true
}

func (a *LibraryBooks) AddMinutes(ctx context.Context, bookID int64, minutes int) bool {
	_, ok := a.library.AddTime(ctx, bookID, minutes)
	return ok
}

func (a *LibraryBooks) SetExcerpt(ctx context.Context, bookID int64, excerpt string) bool {
	_, ok := a.library.SetExcerpt(ctx, bookID, excerpt)
	return ok
}
