package kvstore

import (
	"context"
	"sync"
)

type MemoryProvider struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{values: map[string]string{}}
}

func (p *MemoryProvider) Get(_ context.Context, key string) (string, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *MemoryProvider) Set(_ context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return nil
}

func (p *MemoryProvider) Close() error { return nil }
