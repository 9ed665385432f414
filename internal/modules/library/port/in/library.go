package in

import (
	"context"

	"readtrack/internal/modules/library/dto"
)

type Usecase interface {
	AddBook(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, bool)
	UpdateBook(ctx context.Context, input dto.UpdateBookInput) (dto.BookOutput, bool)
	DeleteBook(ctx context.Context, id int64) bool
	GetBook(ctx context.Context, id int64) (dto.BookOutput, error)
	ListBooks(ctx context.Context) []dto.BookOutput
	AddTime(ctx context.Context, id int64, minutes int) (dto.BookOutput, bool)
	SetExcerpt(ctx context.Context, id int64, excerpt string) (dto.BookOutput, bool)
	ResolveTitle(ctx context.Context, id int64) string
	FilterBooks(ctx context.Context, input dto.FilterInput) []dto.BookOutput
	UniqueGenres(ctx context.Context) []string
	Statistics(ctx context.Context) dto.StatisticsOutput
	Flush(ctx context.Context) error
}
