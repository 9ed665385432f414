package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
	apperrors "readtrack/internal/platform/errors"
	"readtrack/internal/platform/sched"
)

const (
	tickInterval    = time.Second
	accrualInterval = domain.AccrualInterval * time.Second
)

// slot owns at most one pending callback. Cancelling bumps the generation so
// a callback that already left the scheduler is ignored once it gets the lock.
type slot struct {
	gen    uint64
	handle sched.Handle
}

func (s *slot) cancel() {
	s.gen++
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
}

// Desk is the reading desk: the selected book, its typewriter playback, the
// stopwatch with its minute accrual and the countdown focus timer. Every
// transition and every timer callback runs under one mutex.
type Desk struct {
	ctx      context.Context
	sched    sched.Scheduler
	books    readerout.BookSource
	sessions readerout.SessionSink
	notifier readerout.Notifier
	log      *zap.Logger

	mu           sync.Mutex
	closed       bool
	seq          uint64
	book         *domain.BookRef
	typewriter   domain.Typewriter
	stopwatch    domain.Stopwatch
	countdown    domain.Countdown
	speed        time.Duration
	pendingPages int
	pendingNotes string

	step    slot
	tick    slot
	accrual slot
	focus   slot
}

// NewDesk builds an idle desk. ctx scopes the persistence calls made from
// timer callbacks.
func NewDesk(
	ctx context.Context,
	scheduler sched.Scheduler,
	books readerout.BookSource,
	sessions readerout.SessionSink,
	notifier readerout.Notifier,
	speed time.Duration,
	sessionMinutes int,
	log *zap.Logger,
) *Desk {
	if log == nil {
		log = zap.NewNop()
	}
	return &Desk{
		ctx:        ctx,
		sched:      scheduler,
		books:      books,
		sessions:   sessions,
		notifier:   notifier,
		log:        log,
		typewriter: domain.NewTypewriter(""),
		countdown:  domain.NewCountdown(sessionMinutes),
		speed:      domain.ClampSpeed(speed),
	}
}

// SelectBook switches the desk to another book, dropping playback, the
// stopwatch and the countdown of the previous one.
func (d *Desk) SelectBook(ctx context.Context, bookID int64) error {
	book, ok := d.books.Book(ctx, bookID)
	if !ok {
		return fmt.Errorf("select book %d: %w", bookID, apperrors.ErrNotFound)
	}
	d.mu.Lock()
	d.cancelAll()
	d.book = &book
	d.typewriter = domain.NewTypewriter(book.Excerpt)
	d.stopwatch.Reset()
	d.countdown.Reset()
	d.pendingPages, d.pendingNotes = 0, ""
	event := d.eventLocked(domain.EventSelection)
	d.mu.Unlock()

	d.log.Info("book selected", zap.Int64("book_id", bookID))
	d.emit(event)
	return nil
}

// StartReading starts typewriter playback and the stopwatch. A finished
// excerpt does not keep the stopwatch from starting.
func (d *Desk) StartReading(context.Context) error {
	d.mu.Lock()
	if d.book == nil {
		d.mu.Unlock()
		return apperrors.ErrNoBookSelected
	}
	switch d.typewriter.State() {
	case domain.PlaybackIdle, domain.PlaybackPaused:
		if err := d.typewriter.Start(); err != nil {
			d.mu.Unlock()
			return err
		}
		if d.typewriter.State() == domain.PlaybackPlaying {
			d.arm(&d.step, d.speed, d.onStep)
		}
	}
	if d.stopwatch.Start() {
		d.arm(&d.tick, tickInterval, d.onTick)
		d.arm(&d.accrual, accrualInterval, d.onAccrual)
	}
	event := d.eventLocked(domain.EventStopwatch)
	d.mu.Unlock()

	d.emit(event)
	return nil
}

func (d *Desk) PauseReading(context.Context) error {
	d.mu.Lock()
	if d.book == nil {
		d.mu.Unlock()
		return apperrors.ErrNoBookSelected
	}
	if d.typewriter.State() == domain.PlaybackPlaying {
		_ = d.typewriter.Pause()
	}
	d.step.cancel()
	d.stopwatch.Pause()
	d.tick.cancel()
	d.accrual.cancel()
	event := d.eventLocked(domain.EventStopwatch)
	d.mu.Unlock()

	d.emit(event)
	return nil
}

// ResetReading returns playback to the start and zeroes the stopwatch.
func (d *Desk) ResetReading(context.Context) error {
	d.mu.Lock()
	d.step.cancel()
	d.tick.cancel()
	d.accrual.cancel()
	d.typewriter.Reset()
	d.stopwatch.Reset()
	event := d.eventLocked(domain.EventStopwatch)
	d.mu.Unlock()

	d.emit(event)
	return nil
}

// SetSpeed changes the playback delay. A pending step is re-armed with the
// new delay.
func (d *Desk) SetSpeed(_ context.Context, speed time.Duration) time.Duration {
	d.mu.Lock()
	d.speed = domain.ClampSpeed(speed)
	if d.typewriter.State() == domain.PlaybackPlaying {
		d.arm(&d.step, d.speed, d.onStep)
	}
	applied := d.speed
	event := d.eventLocked(domain.EventTypewriter)
	d.mu.Unlock()

	d.emit(event)
	return applied
}

func (d *Desk) StartCountdown(context.Context) error {
	d.mu.Lock()
	if err := d.countdown.Start(); err != nil {
		d.mu.Unlock()
		return err
	}
	d.arm(&d.focus, tickInterval, d.onFocusTick)
	event := d.eventLocked(domain.EventCountdown)
	d.mu.Unlock()

	d.emit(event)
	return nil
}

func (d *Desk) ToggleCountdown(context.Context) error {
	d.mu.Lock()
	if err := d.countdown.Toggle(); err != nil {
		d.mu.Unlock()
		return err
	}
	if d.countdown.State() == domain.CountdownRunning {
		d.arm(&d.focus, tickInterval, d.onFocusTick)
	} else {
		d.focus.cancel()
	}
	event := d.eventLocked(domain.EventCountdown)
	d.mu.Unlock()

	d.emit(event)
	return nil
}

func (d *Desk) ResetCountdown(context.Context) error {
	d.mu.Lock()
	d.focus.cancel()
	d.countdown.Reset()
	event := d.eventLocked(domain.EventCountdown)
	d.mu.Unlock()

	d.emit(event)
	return nil
}

func (d *Desk) SetSessionLength(_ context.Context, minutes int) error {
	d.mu.Lock()
	if err := d.countdown.SetLength(minutes); err != nil {
		d.mu.Unlock()
		return err
	}
	d.focus.cancel()
	event := d.eventLocked(domain.EventCountdown)
	d.mu.Unlock()

	d.emit(event)
	return nil
}

// SetSessionNotes stores the pages and notes attached to the session the
// next countdown expiry records.
func (d *Desk) SetSessionNotes(_ context.Context, pages int, notes string) {
	if pages < 0 {
		pages = 0
	}
	d.mu.Lock()
	d.pendingPages, d.pendingNotes = pages, notes
	d.mu.Unlock()
}

// ReloadBook refreshes the selected book after a library change. A changed
// excerpt restarts playback; a deleted book clears the desk.
func (d *Desk) ReloadBook(ctx context.Context, bookID int64) {
	d.mu.Lock()
	if d.book == nil || d.book.ID != bookID {
		d.mu.Unlock()
		return
	}
	book, ok := d.books.Book(ctx, bookID)
	switch {
	case !ok:
		d.cancelAll()
		d.book = nil
		d.typewriter = domain.NewTypewriter("")
		d.stopwatch.Reset()
		d.countdown.Reset()
	case book.Excerpt != d.book.Excerpt:
		d.step.cancel()
		d.typewriter = domain.NewTypewriter(book.Excerpt)
		d.book = &book
	default:
		d.book = &book
	}
	event := d.eventLocked(domain.EventSelection)
	d.mu.Unlock()

	d.emit(event)
}

func (d *Desk) Snapshot() domain.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Close cancels every pending callback. The desk ignores timers afterwards.
func (d *Desk) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelAll()
	d.closed = true
}

func (d *Desk) cancelAll() {
	d.step.cancel()
	d.tick.cancel()
	d.accrual.cancel()
	d.focus.cancel()
}

// arm replaces whatever s holds with a new callback after delay. Callers hold mu.
func (d *Desk) arm(s *slot, delay time.Duration, fire func() *domain.Event) {
	s.cancel()
	gen := s.gen
	s.handle = d.sched.AfterFunc(delay, func() {
		d.mu.Lock()
		if d.closed || s.gen != gen {
			d.mu.Unlock()
			return
		}
		s.handle = nil
		event := fire()
		d.mu.Unlock()

		if event != nil {
			d.emit(*event)
		}
	})
}

func (d *Desk) onStep() *domain.Event {
	if d.typewriter.Step() {
		d.arm(&d.step, d.speed, d.onStep)
	}
	event := d.eventLocked(domain.EventTypewriter)
	return &event
}

func (d *Desk) onTick() *domain.Event {
	if !d.stopwatch.Running() {
		return nil
	}
	d.stopwatch.Tick()
	d.arm(&d.tick, tickInterval, d.onTick)
	event := d.eventLocked(domain.EventStopwatch)
	return &event
}

func (d *Desk) onAccrual() *domain.Event {
	if !d.stopwatch.Running() || d.book == nil {
		return nil
	}
	if !d.books.AddMinutes(d.ctx, d.book.ID, 1) {
		d.log.Warn("accrual skipped, book missing", zap.Int64("book_id", d.book.ID))
	}
	d.arm(&d.accrual, accrualInterval, d.onAccrual)
	event := d.eventLocked(domain.EventAccrual)
	return &event
}

func (d *Desk) onFocusTick() *domain.Event {
	if !d.countdown.Tick() {
		if d.countdown.State() == domain.CountdownRunning {
			d.arm(&d.focus, tickInterval, d.onFocusTick)
		}
		event := d.eventLocked(domain.EventCountdown)
		return &event
	}
	if d.book == nil {
		event := d.eventLocked(domain.EventCountdown)
		return &event
	}
	d.sessions.Append(d.ctx, domain.SessionRecord{
		BookID:    d.book.ID,
		Duration:  d.countdown.Minutes(),
		PagesRead: d.pendingPages,
		Notes:     d.pendingNotes,
	})
	d.log.Info("focus session recorded", zap.Int64("book_id", d.book.ID), zap.Int("duration_min", d.countdown.Minutes()))
	d.pendingPages, d.pendingNotes = 0, ""
	event := d.eventLocked(domain.EventSessionRecorded)
	return &event
}

func (d *Desk) eventLocked(kind domain.EventKind) domain.Event {
	d.seq++
	return domain.Event{Kind: kind, Snapshot: d.snapshotLocked()}
}

func (d *Desk) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Seq:              d.seq,
		Playback:         d.typewriter.State(),
		Revealed:         d.typewriter.Revealed(),
		Cursor:           d.typewriter.Cursor(),
		Length:           d.typewriter.Len(),
		Speed:            d.speed,
		StopwatchRunning: d.stopwatch.Running(),
		Elapsed:          d.stopwatch.Elapsed(),
		Countdown:        d.countdown.State(),
		Remaining:        d.countdown.Remaining(),
		SessionMinutes:   d.countdown.Minutes(),
		PendingPages:     d.pendingPages,
		PendingNotes:     d.pendingNotes,
	}
	if d.book != nil {
		snap.BookID = d.book.ID
		snap.BookTitle = d.book.Title
	}
	return snap
}

func (d *Desk) emit(event domain.Event) {
	if d.notifier != nil {
		d.notifier.Notify(event)
	}
}
