package in

import (
	"context"

	sessiondto "readtrack/internal/modules/session/dto"
)

type Usecase interface {
	AppendSession(ctx context.Context, input sessiondto.SessionInput) sessiondto.SessionOutput
	RecordSession(ctx context.Context, input sessiondto.SessionInput) (sessiondto.SessionOutput, bool)
	ListSessions(ctx context.Context, input sessiondto.ListInput) []sessiondto.SessionOutput
	ExportNotes(ctx context.Context) (sessiondto.ExportOutput, error)
	Flush(ctx context.Context) error
}
