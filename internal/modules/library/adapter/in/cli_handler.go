package in

import (
	"context"

	"readtrack/internal/modules/library/dto"
	libraryin "readtrack/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddBook(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, bool) {
	return h.usecase.AddBook(ctx, input)
}

func (h CLIHandler) UpdateBook(ctx context.Context, input dto.UpdateBookInput) (dto.BookOutput, bool) {
	return h.usecase.UpdateBook(ctx, input)
}

func (h CLIHandler) DeleteBook(ctx context.Context, id int64) bool {
	return h.usecase.DeleteBook(ctx, id)
}

func (h CLIHandler) GetBook(ctx context.Context, id int64) (dto.BookOutput, error) {
	return h.usecase.GetBook(ctx, id)
}

func (h CLIHandler) ListBooks(ctx context.Context) []dto.BookOutput {
	return h.usecase.ListBooks(ctx)
}

func (h CLIHandler) FilterBooks(ctx context.Context, search, status, genre string) []dto.BookOutput {
	return h.usecase.FilterBooks(ctx, dto.FilterInput{Search: search, Status: status, Genre: genre})
}

func (h CLIHandler) UniqueGenres(ctx context.Context) []string {
	return h.usecase.UniqueGenres(ctx)
}

func (h CLIHandler) Statistics(ctx context.Context) dto.StatisticsOutput {
	return h.usecase.Statistics(ctx)
}
