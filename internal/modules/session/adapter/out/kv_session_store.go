package out

import (
	"context"

	"readtrack/internal/modules/session/domain"
	sessionout "readtrack/internal/modules/session/port/out"
	"readtrack/internal/platform/kvstore"
)

const SessionsKey = "reading-sessions"

type KVSessionStore struct {
	store *kvstore.Store
}

func NewKVSessionStore(store *kvstore.Store) sessionout.SessionStore {
	return &KVSessionStore{store: store}
}

func (s *KVSessionStore) Load(ctx context.Context) []domain.ReadingSession {
	return kvstore.Load(ctx, s.store, SessionsKey, []domain.ReadingSession{})
}

func (s *KVSessionStore) Save(ctx context.Context, sessions []domain.ReadingSession) error {
	return kvstore.Save(ctx, s.store, SessionsKey, sessions)
}
