package out

import (
	"context"

	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
	sessiondto "readtrack/internal/modules/session/dto"
	sessionin "readtrack/internal/modules/session/port/in"
)

// SessionSink appends expired focus sessions to the session log. Book time
// is not credited here: the stopwatch accrual already covers it.
type SessionSink struct {
	sessions sessionin.Usecase
}

func NewSessionSink(sessions sessionin.Usecase) readerout.SessionSink {
	return &SessionSink{sessions: sessions}
}

func (a *SessionSink) Append(ctx context.Context, record domain.SessionRecord) {
	a.sessions.AppendSession(ctx, sessiondto.SessionInput{
		BookID:    record.BookID,
		Duration:  record.Duration,
		PagesRead: record.PagesRead,
		Notes:     record.Notes,
	})
}
