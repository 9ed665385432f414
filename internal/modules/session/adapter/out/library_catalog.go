package out

import (
	"context"

	libraryin "readtrack/internal/modules/library/port/in"
	sessionout "readtrack/internal/modules/session/port/out"
)

type LibraryCatalog struct {
	library libraryin.Usecase
}

func NewLibraryCatalog(library libraryin.Usecase) sessionout.BookCatalog {
	return &LibraryCatalog{library: library}
}

func (a *LibraryCatalog) ResolveTitle(ctx context.Context, bookID int64) string {
	return a.library.ResolveTitle(ctx, bookID)
}

func (a *LibraryCatalog) AddTime(ctx context.Context, bookID int64, minutes int) bool {
	_, ok := a.library.AddTime(ctx, bookID, minutes)
	return ok
}
