package in

import (
	"context"

	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
)

type CLIHandler struct {
	usecase readerin.Usecase
}

func NewCLIHandler(usecase readerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ImportExcerpt(ctx context.Context, bookID int64, path string, page, maxRunes int) (dto.ImportExcerptOutput, error) {
	return h.usecase.ImportExcerpt(ctx, dto.ImportExcerptInput{BookID: bookID, Path: path, Page: page, MaxRunes: maxRunes})
}

// RunCountdown selects the book and starts a focus session of the given length.
func (h CLIHandler) RunCountdown(ctx context.Context, bookID int64, minutes, pages int, notes string) error {
	if err := h.usecase.SelectBook(ctx, bookID); err != nil {
		return err
	}
	if err := h.usecase.SetSessionLength(ctx, minutes); err != nil {
		return err
	}
	h.usecase.SetSessionNotes(ctx, pages, notes)
	return h.usecase.StartCountdown(ctx)
}

func (h CLIHandler) Subscribe(fn func(dto.DeskEvent)) func() {
	return h.usecase.Subscribe(fn)
}

func (h CLIHandler) View(ctx context.Context) dto.DeskView {
	return h.usecase.View(ctx)
}

func (h CLIHandler) Close() {
	h.usecase.Close()
}
