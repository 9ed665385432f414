// Package kvstore persists typed collections in a key-value provider.
// Reads degrade to a caller supplied default. Writes are logged on failure
// and the error is handed back for callers that must report it.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Provider is the durable medium behind a Store.
type Provider interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

type Store struct {
	provider Provider
	log      *zap.Logger
}

func New(provider Provider, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{provider: provider, log: log}
}

func (s *Store) Close() error {
	return s.provider.Close()
}

// Load decodes the value stored under key, returning def when the key is
// absent, unreadable or malformed.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok, err := s.provider.Get(ctx, key)
	if err != nil {
		s.log.Warn("read failed, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.log.Warn("malformed value, using default", zap.String("key", key), zap.Error(err))
		return def
	}
	return value
}

// Save encodes value and writes it synchronously. Failures are logged and
// returned.
func Save[T any](ctx context.Context, s *Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error("encode failed, value not saved", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.provider.Set(ctx, key, string(raw)); err != nil {
		s.log.Error("write failed, value not saved", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
