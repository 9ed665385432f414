package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "readtrack/internal/platform/errors"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"

	MinSessionMinutes = 5
	MaxSessionMinutes = 60
	MinSpeed          = 20 * time.Millisecond
	MaxSpeed          = 200 * time.Millisecond
)

type Config struct {
	DataDir   string
	Backend   string
	DBPath    string
	StateDir  string
	VaultPath string
	LogFile   string
	LogLevel  string
	Reader    ReaderConfig
}

// ReaderConfig holds the reading desk defaults.
type ReaderConfig struct {
	Speed          time.Duration
	SessionMinutes int
}

// New returns the default configuration rooted at dataDir.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:  dataDir,
		Backend:  BackendSQLite,
		LogLevel: "info",
		Reader: ReaderConfig{
			Speed:          100 * time.Millisecond,
			SessionMinutes: 25,
		},
	}
	cfg.derivePaths()
	return cfg, nil
}

func (c *Config) derivePaths() {
	c.DBPath = filepath.Join(c.DataDir, "readtrack.db")
	c.StateDir = filepath.Join(c.DataDir, "state")
	c.VaultPath = filepath.Join(c.DataDir, "vault")
	c.LogFile = filepath.Join(c.DataDir, "readtrack.log")
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("%w: unsupported backend %q", apperrors.ErrInvalidInput, c.Backend)
	}
	if c.Reader.SessionMinutes < MinSessionMinutes || c.Reader.SessionMinutes > MaxSessionMinutes {
		return fmt.Errorf("%w: session minutes must be between %d and %d", apperrors.ErrInvalidInput, MinSessionMinutes, MaxSessionMinutes)
	}
	if c.Reader.Speed < MinSpeed || c.Reader.Speed > MaxSpeed {
		return fmt.Errorf("%w: reader speed must be between %s and %s", apperrors.ErrInvalidInput, MinSpeed, MaxSpeed)
	}
	return nil
}
