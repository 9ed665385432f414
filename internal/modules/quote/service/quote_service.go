package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"readtrack/internal/modules/quote/domain"
	quoteout "readtrack/internal/modules/quote/port/out"
	"readtrack/internal/platform/clock"
	"readtrack/internal/platform/id"
)

type QuoteService struct {
	clock clock.Clock
	idGen id.Generator
	store quoteout.QuoteStore
	log   *zap.Logger

	mu     sync.RWMutex
	quotes []domain.Quote
}

func NewQuoteService(ctx context.Context, clock clock.Clock, idGen id.Generator, store quoteout.QuoteStore, log *zap.Logger) *QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuoteService{clock: clock, idGen: idGen, store: store, log: log, quotes: store.Load(ctx)}
}

func (s *QuoteService) Add(ctx context.Context, draft domain.Draft) (domain.Quote, bool) {
	if err := draft.Validate(); err != nil {
		s.log.Debug("quote not added", zap.Error(err))
		return domain.Quote{}, false
	}
	tags := make([]string, 0, len(draft.Tags))
	for _, tag := range draft.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	quote := domain.Quote{
		ID:        s.freshID(),
		Text:      strings.TrimSpace(draft.Text),
		Author:    strings.TrimSpace(draft.Author),
		Book:      strings.TrimSpace(draft.Book),
		BookID:    draft.BookID,
		Page:      draft.Page,
		Tags:      tags,
		DateAdded: s.clock.Now(),
	}
	s.quotes = append(s.quotes, quote)
	_ = s.store.Save(ctx, s.quotes)
	s.log.Info("quote added", zap.Int64("quote_id", quote.ID))
	return quote, true
}

func (s *QuoteService) Delete(ctx context.Context, quoteID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotes {
		if s.quotes[i].ID != quoteID {
			continue
		}
		s.quotes = append(s.quotes[:i:i], s.quotes[i+1:]...)
		_ = s.store.Save(ctx, s.quotes)
		return true
	}
	return false
}

func (s *QuoteService) List() []domain.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

func (s *QuoteService) Flush(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Save(ctx, s.quotes)
}

func (s *QuoteService) freshID() int64 {
	for {
		candidate := s.idGen.New()
		taken := false
		for i := range s.quotes {
			if s.quotes[i].ID == candidate {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
	}
}
