package in

import (
	"context"

	"readtrack/internal/modules/quote/dto"
	quotein "readtrack/internal/modules/quote/port/in"
)

type CLIHandler struct {
	usecase quotein.Usecase
}

func NewCLIHandler(usecase quotein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input dto.AddQuoteInput) (dto.QuoteOutput, bool) {
	return h.usecase.AddQuote(ctx, input)
}

func (h CLIHandler) List(ctx context.Context) []dto.QuoteOutput {
	return h.usecase.ListQuotes(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, id int64) bool {
	return h.usecase.DeleteQuote(ctx, id)
}
