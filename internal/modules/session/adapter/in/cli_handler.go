package in

import (
	"context"

	sessiondto "readtrack/internal/modules/session/dto"
	sessionin "readtrack/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, bookID int64, minutes, pages int, notes string) (sessiondto.SessionOutput, bool) {
	return h.usecase.RecordSession(ctx, sessiondto.SessionInput{BookID: bookID, Duration: minutes, PagesRead: pages, Notes: notes})
}

func (h CLIHandler) List(ctx context.Context, bookID int64, limit int) []sessiondto.SessionOutput {
	return h.usecase.ListSessions(ctx, sessiondto.ListInput{BookID: bookID, Limit: limit})
}

func (h CLIHandler) Export(ctx context.Context) (sessiondto.ExportOutput, error) {
	return h.usecase.ExportNotes(ctx)
}
