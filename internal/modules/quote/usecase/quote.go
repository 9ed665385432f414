package usecase

import (
	"context"
	"fmt"

	"readtrack/internal/modules/quote/domain"
	"readtrack/internal/modules/quote/dto"
	quotein "readtrack/internal/modules/quote/port/in"
	quoteout "readtrack/internal/modules/quote/port/out"
	"readtrack/internal/modules/quote/service"
)

type Interactor struct {
	svc    *service.QuoteService
	titles quoteout.BookTitles
}

func NewInteractor(svc *service.QuoteService, titles quoteout.BookTitles) quotein.Usecase {
	return &Interactor{svc: svc, titles: titles}
}

func (i *Interactor) AddQuote(ctx context.Context, input dto.AddQuoteInput) (dto.QuoteOutput, bool) {
	draft := domain.Draft{
		Text:   input.Text,
		Author: input.Author,
		Book:   input.Book,
		Page:   input.Page,
		Tags:   input.Tags,
	}
	if input.BookID != 0 {
		bookID := input.BookID
		draft.BookID = &bookID
		if draft.Book == "" && i.titles != nil {
			draft.Book = i.titles.ResolveTitle(ctx, bookID)
		}
	}
	quote, ok := i.svc.Add(ctx, draft)
	if !ok {
		return dto.QuoteOutput{}, false
	}
	return i.toOutput(ctx, quote), true
}

func (i *Interactor) ListQuotes(ctx context.Context) []dto.QuoteOutput {
	quotes := i.svc.List()
	out := make([]dto.QuoteOutput, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, i.toOutput(ctx, q))
	}
	return out
}

// DeleteQuote removes a quote; the referenced book is untouched.
func (i *Interactor) DeleteQuote(ctx context.Context, id int64) bool {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Flush(ctx context.Context) error {
	if err := i.svc.Flush(ctx); err != nil {
		return fmt.Errorf("flush quotes: %w", err)
	}
	return nil
}

func (i *Interactor) toOutput(ctx context.Context, q domain.Quote) dto.QuoteOutput {
	out := dto.QuoteOutput{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		Book:      q.Book,
		Page:      q.Page,
		Tags:      q.Tags,
		DateAdded: q.DateAdded,
	}
	if q.BookID != nil {
		out.BookID = *q.BookID
		if i.titles != nil {
			out.Book = i.titles.ResolveTitle(ctx, *q.BookID)
		}
	}
	return out
}
