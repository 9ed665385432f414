package usecase

import (
	"context"
	"time"

	"readtrack/internal/modules/reader/domain"
	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
	"readtrack/internal/modules/reader/service"
)

type Interactor struct {
	desk     *service.Desk
	importer *service.ExcerptImporter
	events   *Events
}

func NewInteractor(desk *service.Desk, importer *service.ExcerptImporter, events *Events) readerin.Usecase {
	return &Interactor{desk: desk, importer: importer, events: events}
}

func (i *Interactor) SelectBook(ctx context.Context, bookID int64) error {
	return i.desk.SelectBook(ctx, bookID)
}

func (i *Interactor) StartReading(ctx context.Context) error {
	return i.desk.StartReading(ctx)
}

func (i *Interactor) PauseReading(ctx context.Context) error {
	return i.desk.PauseReading(ctx)
}

func (i *Interactor) ResetReading(ctx context.Context) error {
	return i.desk.ResetReading(ctx)
}

func (i *Interactor) SetSpeed(ctx context.Context, speedMS int) int {
	applied := i.desk.SetSpeed(ctx, time.Duration(speedMS)*time.Millisecond)
	return int(applied / time.Millisecond)
}

func (i *Interactor) StartCountdown(ctx context.Context) error {
	return i.desk.StartCountdown(ctx)
}

func (i *Interactor) ToggleCountdown(ctx context.Context) error {
	return i.desk.ToggleCountdown(ctx)
}

func (i *Interactor) ResetCountdown(ctx context.Context) error {
	return i.desk.ResetCountdown(ctx)
}

func (i *Interactor) SetSessionLength(ctx context.Context, minutes int) error {
	return i.desk.SetSessionLength(ctx, minutes)
}

func (i *Interactor) SetSessionNotes(ctx context.Context, pages int, notes string) {
	i.desk.SetSessionNotes(ctx, pages, notes)
}

func (i *Interactor) ReloadBook(ctx context.Context, bookID int64) {
	i.desk.ReloadBook(ctx, bookID)
}

func (i *Interactor) View(context.Context) dto.DeskView {
	return toView(i.desk.Snapshot())
}

func (i *Interactor) ImportExcerpt(ctx context.Context, input dto.ImportExcerptInput) (dto.ImportExcerptOutput, error) {
	imported, err := i.importer.Import(ctx, input.BookID, input.Path, input.Page, input.MaxRunes)
	if err != nil {
		return dto.ImportExcerptOutput{}, err
	}
	i.desk.ReloadBook(ctx, input.BookID)
	return dto.ImportExcerptOutput{
		BookID:    input.BookID,
		Format:    imported.Format,
		Page:      imported.Page,
		TotalPage: imported.TotalPage,
		Excerpt:   imported.Excerpt,
	}, nil
}

func (i *Interactor) Subscribe(fn func(dto.DeskEvent)) func() {
	return i.events.Subscribe(fn)
}

func (i *Interactor) Close() {
	i.desk.Close()
}

func toView(s domain.Snapshot) dto.DeskView {
	return dto.DeskView{
		Seq:              s.Seq,
		BookID:           s.BookID,
		BookTitle:        s.BookTitle,
		Playback:         string(s.Playback),
		Revealed:         s.Revealed,
		Cursor:           s.Cursor,
		Length:           s.Length,
		SpeedMS:          int(s.Speed / time.Millisecond),
		StopwatchRunning: s.StopwatchRunning,
		ElapsedSeconds:   s.Elapsed,
		Countdown:        string(s.Countdown),
		RemainingSeconds: s.Remaining,
		SessionMinutes:   s.SessionMinutes,
		PendingPages:     s.PendingPages,
		PendingNotes:     s.PendingNotes,
	}
}
