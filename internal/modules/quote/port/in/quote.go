package in

import (
	"context"

	"readtrack/internal/modules/quote/dto"
)

type Usecase interface {
	AddQuote(ctx context.Context, input dto.AddQuoteInput) (dto.QuoteOutput, bool)
	ListQuotes(ctx context.Context) []dto.QuoteOutput
	DeleteQuote(ctx context.Context, id int64) bool
	Flush(ctx context.Context) error
}
