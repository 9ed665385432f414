package in

import (
	"context"

	"readtrack/internal/modules/reader/dto"
	readerin "readtrack/internal/modules/reader/port/in"
)

// TUIHandler exposes the desk controls bound to keys in the reading view.
type TUIHandler struct {
	usecase readerin.Usecase
}

func NewTUIHandler(usecase readerin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Select(ctx context.Context, bookID int64) error {
	return h.usecase.SelectBook(ctx, bookID)
}

// TogglePlayback starts reading when stopped and pauses it otherwise.
func (h TUIHandler) TogglePlayback(ctx context.Context) error {
	view := h.usecase.View(ctx)
	if view.StopwatchRunning || view.Playback == "playing" {
		return h.usecase.PauseReading(ctx)
	}
	return h.usecase.StartReading(ctx)
}

func (h TUIHandler) ResetReading(ctx context.Context) error {
	return h.usecase.ResetReading(ctx)
}

func (h TUIHandler) AdjustSpeed(ctx context.Context, deltaMS int) int {
	return h.usecase.SetSpeed(ctx, h.usecase.View(ctx).SpeedMS+deltaMS)
}

// ToggleCountdown starts an idle countdown or flips a running one.
func (h TUIHandler) ToggleCountdown(ctx context.Context) error {
	return h.usecase.ToggleCountdown(ctx)
}

func (h TUIHandler) ResetCountdown(ctx context.Context) error {
	return h.usecase.ResetCountdown(ctx)
}

func (h TUIHandler) AdjustSessionLength(ctx context.Context, deltaMinutes int) error {
	return h.usecase.SetSessionLength(ctx, h.usecase.View(ctx).SessionMinutes+deltaMinutes)
}

func (h TUIHandler) SetSessionNotes(ctx context.Context, pages int, notes string) {
	h.usecase.SetSessionNotes(ctx, pages, notes)
}

func (h TUIHandler) ReloadBook(ctx context.Context, bookID int64) {
	h.usecase.ReloadBook(ctx, bookID)
}

func (h TUIHandler) View(ctx context.Context) dto.DeskView {
	return h.usecase.View(ctx)
}

func (h TUIHandler) Subscribe(fn func(dto.DeskEvent)) func() {
	return h.usecase.Subscribe(fn)
}
