package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"readtrack/internal/modules/session/domain"
	sessionout "readtrack/internal/modules/session/port/out"
	"readtrack/internal/platform/clock"
	"readtrack/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
	log   *zap.Logger

	mu       sync.RWMutex
	sessions []domain.ReadingSession
}

func NewSessionService(ctx context.Context, clock clock.Clock, idGen id.Generator, store sessionout.SessionStore, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{clock: clock, idGen: idGen, store: store, log: log, sessions: store.Load(ctx)}
}

// Append stores a new session dated now. It never rejects: the id is always
// fresh and negative page counts are clamped to zero.
func (s *SessionService) Append(ctx context.Context, draft domain.Draft) domain.ReadingSession {
	pages := draft.PagesRead
	if pages < 0 {
		pages = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session := domain.ReadingSession{
		ID:        s.freshID(),
		BookID:    draft.BookID,
		Date:      s.clock.Now(),
		Duration:  draft.Duration,
		PagesRead: pages,
		Notes:     draft.Notes,
	}
	s.sessions = append(s.sessions, session)
	_ = s.store.Save(ctx, s.sessions)
	s.log.Info("session appended",
		zap.Int64("session_id", session.ID),
		zap.Int64("book_id", session.BookID),
		zap.Int("duration_min", session.Duration),
	)
	return session
}

func (s *SessionService) List(bookID int64, limit int) []domain.ReadingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Recent(s.sessions, bookID, limit)
}

func (s *SessionService) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Save(ctx, s.sessions)
}

func (s *SessionService) freshID() int64 {
	for {
		candidate := s.idGen.New()
		taken := false
		for i := range s.sessions {
			if s.sessions[i].ID == candidate {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
	}
}
