package in

import (
	"context"

	"readtrack/internal/modules/reader/dto"
)

type Usecase interface {
	SelectBook(ctx context.Context, bookID int64) error
	StartReading(ctx context.Context) error
	PauseReading(ctx context.Context) error
	ResetReading(ctx context.Context) error
	SetSpeed(ctx context.Context, speedMS int) int
	StartCountdown(ctx context.Context) error
	ToggleCountdown(ctx context.Context) error
	ResetCountdown(ctx context.Context) error
	SetSessionLength(ctx context.Context, minutes int) error
	SetSessionNotes(ctx context.Context, pages int, notes string)
	ReloadBook(ctx context.Context, bookID int64)
	View(ctx context.Context) dto.DeskView
	ImportExcerpt(ctx context.Context, input dto.ImportExcerptInput) (dto.ImportExcerptOutput, error)
	Subscribe(fn func(dto.DeskEvent)) (unsubscribe func())
	Close()
}
