package usecase

import (
	"sync"

	"readtrack/internal/modules/reader/domain"
	"readtrack/internal/modules/reader/dto"
	readerout "readtrack/internal/modules/reader/port/out"
)

// Events fans desk events out to subscribers as DTOs. Deliveries are
// serialized and an event older than the last one delivered is dropped, so
// subscribers observe desk transitions in order.
type Events struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(dto.DeskEvent)

	deliver sync.Mutex
	lastSeq uint64
}

func NewEvents() *Events {
	return &Events{subs: map[int]func(dto.DeskEvent){}}
}

var _ readerout.Notifier = (*Events)(nil)

func (e *Events) Notify(event domain.Event) {
	e.deliver.Lock()
	defer e.deliver.Unlock()
	if event.Snapshot.Seq != 0 && event.Snapshot.Seq <= e.lastSeq {
		return
	}
	e.lastSeq = event.Snapshot.Seq

	out := dto.DeskEvent{Kind: string(event.Kind), View: toView(event.Snapshot)}
	e.mu.RLock()
	subs := make([]func(dto.DeskEvent), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.RUnlock()
	for _, fn := range subs {
		fn(out)
	}
}

func (e *Events) Subscribe(fn func(dto.DeskEvent)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	key := e.nextID
	e.subs[key] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, key)
	}
}
