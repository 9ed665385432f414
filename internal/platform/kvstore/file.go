package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKey = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileProvider keeps one JSON document per key inside dir.
type FileProvider struct {
	dir string
}

func NewFileProvider(dir string) (*FileProvider, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileProvider{dir: dir}, nil
}

func (p *FileProvider) path(key string) string {
	return filepath.Join(p.dir, unsafeKey.ReplaceAllString(key, "_")+".json")
}

func (p *FileProvider) Get(_ context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(p.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), true, nil
}

func (p *FileProvider) Set(_ context.Context, key, value string) error {
	tmp, err := os.CreateTemp(p.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (p *FileProvider) Close() error { return nil }
