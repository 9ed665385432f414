package usecase

import (
	"context"
	"fmt"

	"readtrack/internal/modules/library/domain"
	"readtrack/internal/modules/library/dto"
	libraryin "readtrack/internal/modules/library/port/in"
	"readtrack/internal/modules/library/service"
	apperrors "readtrack/internal/platform/errors"
)

type Interactor struct {
	svc *service.BookService
}

func NewInteractor(svc *service.BookService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AddBook(ctx context.Context, input dto.AddBookInput) (dto.BookOutput, bool) {
	book, ok := i.svc.Add(ctx, domain.Draft{
		Title:   input.Title,
		Author:  input.Author,
		Genre:   input.Genre,
		Excerpt: input.Excerpt,
		Pages:   input.Pages,
		Notes:   input.Notes,
		Tags:    input.Tags,
	})
	if !ok {
		return dto.BookOutput{}, false
	}
	return toOutput(book), true
}

func (i *Interactor) UpdateBook(ctx context.Context, input dto.UpdateBookInput) (dto.BookOutput, bool) {
	book, ok := i.svc.Update(ctx, domain.Book{
		ID:              input.ID,
		Title:           input.Title,
		Author:          input.Author,
		Genre:           input.Genre,
		Excerpt:         input.Excerpt,
		Pages:           input.Pages,
		Status:          domain.Status(input.Status),
		ReadingProgress: input.ReadingProgress,
		Rating:          input.Rating,
		Notes:           input.Notes,
		Tags:            input.Tags,
	})
	if !ok {
		return dto.BookOutput{}, false
	}
	return toOutput(book), true
}

func (i *Interactor) DeleteBook(ctx context.Context, id int64) bool {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) GetBook(_ context.Context, id int64) (dto.BookOutput, error) {
	book, ok := i.svc.Get(id)
	if !ok {
		return dto.BookOutput{}, fmt.Errorf("book %d: %w", id, apperrors.ErrNotFound)
	}
	return toOutput(book), nil
}

func (i *Interactor) ListBooks(_ context.Context) []dto.BookOutput {
	return toOutputs(i.svc.List())
}

func (i *Interactor) AddTime(ctx context.Context, id int64, minutes int) (dto.BookOutput, bool) {
	book, ok := i.svc.AddTime(ctx, id, minutes)
	if !ok {
		return dto.BookOutput{}, false
	}
	return toOutput(book), true
}

func (i *Interactor) SetExcerpt(ctx context.Context, id int64, excerpt string) (dto.BookOutput, bool) {
	book, ok := i.svc.SetExcerpt(ctx, id, excerpt)
	if !ok {
		return dto.BookOutput{}, false
	}
	return toOutput(book), true
}

// ResolveTitle follows a weak book reference; deleted books resolve to a placeholder.
func (i *Interactor) ResolveTitle(_ context.Context, id int64) string {
	book, ok := i.svc.Get(id)
	if !ok {
		return domain.UnknownTitle
	}
	return book.Title
}

func (i *Interactor) FilterBooks(_ context.Context, input dto.FilterInput) []dto.BookOutput {
	return toOutputs(domain.FilterBooks(i.svc.List(), domain.Filter{
		Search: input.Search,
		Status: input.Status,
		Genre:  input.Genre,
	}))
}

func (i *Interactor) UniqueGenres(_ context.Context) []string {
	return domain.UniqueGenres(i.svc.List())
}

func (i *Interactor) Statistics(_ context.Context) dto.StatisticsOutput {
	books := i.svc.List()
	stats := domain.ComputeStatistics(books)
	out := dto.StatisticsOutput{
		BooksRead:        stats.BooksRead,
		PagesRead:        stats.PagesRead,
		TotalTimeHours:   stats.TotalTimeHours,
		AverageRating:    stats.AverageRating,
		CurrentlyReading: stats.CurrentlyReading,
		ToRead:           stats.ToRead,
	}
	progress := domain.ProgressByGenre(books)
	for _, g := range progress {
		out.Genres = append(out.Genres, dto.GenreProgressOutput{
			Genre:     g.Genre,
			Completed: g.Completed,
			Total:     g.Total,
			Percent:   g.Percent(),
		})
	}
	for _, c := range domain.Challenges(stats, len(progress)) {
		out.Challenges = append(out.Challenges, dto.ChallengeOutput{
			Name:    c.Name,
			Current: c.Current,
			Target:  c.Target,
			Percent: c.Percent(),
			Done:    c.Done(),
		})
	}
	return out
}

func (i *Interactor) Flush(ctx context.Context) error {
	if err := i.svc.Flush(ctx); err != nil {
		return fmt.Errorf("flush books: %w", err)
	}
	return nil
}

func toOutputs(books []domain.Book) []dto.BookOutput {
	out := make([]dto.BookOutput, 0, len(books))
	for _, book := range books {
		out = append(out, toOutput(book))
	}
	return out
}

func toOutput(book domain.Book) dto.BookOutput {
	return dto.BookOutput{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		Genre:           book.Genre,
		Excerpt:         book.Excerpt,
		Pages:           book.Pages,
		Status:          string(book.Status),
		ReadingProgress: book.ReadingProgress,
		TimeSpent:       book.TimeSpent,
		Rating:          book.Rating,
		Notes:           book.Notes,
		Tags:            book.Tags,
		DateAdded:       book.DateAdded,
		DateStarted:     book.DateStarted,
		DateFinished:    book.DateFinished,
	}
}
