package out

import (
	"context"

	"readtrack/internal/modules/session/domain"
)

type SessionStore interface {
	Load(ctx context.Context) []domain.ReadingSession
	Save(ctx context.Context, sessions []domain.ReadingSession) error
}

// BookCatalog is the session module's view of the library.
type BookCatalog interface {
	ResolveTitle(ctx context.Context, bookID int64) string
	AddTime(ctx context.Context, bookID int64, minutes int) bool
}

// BookNote is the per-book digest written next to the session notes.
type BookNote struct {
	BookID   int64
	Title    string
	Sessions []domain.ReadingSession
}

type NoteWriter interface {
	Dir() string
	WriteSession(ctx context.Context, session domain.ReadingSession, bookTitle string) (string, error)
	WriteBook(ctx context.Context, note BookNote) (string, error)
}
