package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"readtrack/internal/modules/session/domain"
	sessiondto "readtrack/internal/modules/session/dto"
	sessionin "readtrack/internal/modules/session/port/in"
	sessionout "readtrack/internal/modules/session/port/out"
	"readtrack/internal/modules/session/service"
)

type Interactor struct {
	svc     *service.SessionService
	catalog sessionout.BookCatalog
	notes   sessionout.NoteWriter
	log     *zap.Logger
}

func NewInteractor(svc *service.SessionService, catalog sessionout.BookCatalog, notes sessionout.NoteWriter, log *zap.Logger) sessionin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{svc: svc, catalog: catalog, notes: notes, log: log}
}

func (i *Interactor) AppendSession(ctx context.Context, input sessiondto.SessionInput) sessiondto.SessionOutput {
	session := i.svc.Append(ctx, toDraft(input))
	return i.toOutput(ctx, session)
}

// RecordSession appends a session and credits its duration to the book.
func (i *Interactor) RecordSession(ctx context.Context, input sessiondto.SessionInput) (sessiondto.SessionOutput, bool) {
	draft := toDraft(input)
	if err := draft.Validate(); err != nil {
		i.log.Debug("session not recorded", zap.Error(err))
		return sessiondto.SessionOutput{}, false
	}
	session := i.svc.Append(ctx, draft)
	if i.catalog != nil && !i.catalog.AddTime(ctx, session.BookID, session.Duration) {
		i.log.Warn("session recorded for unknown book", zap.Int64("book_id", session.BookID))
	}
	return i.toOutput(ctx, session), true
}

func (i *Interactor) ListSessions(ctx context.Context, input sessiondto.ListInput) []sessiondto.SessionOutput {
	sessions := i.svc.List(input.BookID, input.Limit)
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, i.toOutput(ctx, s))
	}
	return out
}

// ExportNotes writes one note per session and one digest note per book.
func (i *Interactor) ExportNotes(ctx context.Context) (sessiondto.ExportOutput, error) {
	if i.notes == nil {
		return sessiondto.ExportOutput{}, fmt.Errorf("note export is not configured")
	}
	result := sessiondto.ExportOutput{Dir: i.notes.Dir()}
	byBook := map[int64][]domain.ReadingSession{}
	order := []int64{}
	titles := map[int64]string{}
	for _, s := range i.svc.List(0, 0) {
		title, ok := titles[s.BookID]
		if !ok {
			title = i.resolveTitle(ctx, s.BookID)
			titles[s.BookID] = title
			order = append(order, s.BookID)
		}
		path, err := i.notes.WriteSession(ctx, s, title)
		if err != nil {
			return result, fmt.Errorf("export session %d: %w", s.ID, err)
		}
		result.SessionNotes = append(result.SessionNotes, path)
		byBook[s.BookID] = append(byBook[s.BookID], s)
	}
	for _, bookID := range order {
		path, err := i.notes.WriteBook(ctx, sessionout.BookNote{BookID: bookID, Title: titles[bookID], Sessions: byBook[bookID]})
		if err != nil {
			return result, fmt.Errorf("export book %d: %w", bookID, err)
		}
		result.BookNotes = append(result.BookNotes, path)
	}
	i.log.Info("session notes exported",
		zap.String("dir", result.Dir),
		zap.Int("sessions", len(result.SessionNotes)),
		zap.Int("books", len(result.BookNotes)),
	)
	return result, nil
}

func (i *Interactor) Flush(ctx context.Context) error {
	if err := i.svc.Flush(ctx); err != nil {
		return fmt.Errorf("flush sessions: %w", err)
	}
	return nil
}

func (i *Interactor) resolveTitle(ctx context.Context, bookID int64) string {
	if i.catalog == nil {
		return ""
	}
	return i.catalog.ResolveTitle(ctx, bookID)
}

func (i *Interactor) toOutput(ctx context.Context, s domain.ReadingSession) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:        s.ID,
		BookID:    s.BookID,
		BookTitle: i.resolveTitle(ctx, s.BookID),
		Date:      s.Date,
		Duration:  s.Duration,
		PagesRead: s.PagesRead,
		Notes:     s.Notes,
	}
}

func toDraft(input sessiondto.SessionInput) domain.Draft {
	return domain.Draft{
		BookID:    input.BookID,
		Duration:  input.Duration,
		PagesRead: input.PagesRead,
		Notes:     input.Notes,
	}
}
