package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Options carry the command-line layer, which wins over everything else.
type Options struct {
	ConfigPath string
	EnvFile    string
	DataDir    string
	Backend    string
}

// Load resolves the configuration from defaults, the config file, the .env
// file, READTRACK_* variables and finally opts.
func Load(opts Options) (Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}
	fc, err := LoadFile(opts.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	dataDir := DefaultDataDir()
	if fc.DataDir != nil {
		dataDir = *fc.DataDir
	}
	dataDir = envString("READTRACK_DATA_DIR", dataDir)
	if opts.DataDir != "" {
		dataDir = opts.DataDir
	}
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}

	if fc.Backend != nil {
		cfg.Backend = *fc.Backend
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.Vault != nil {
		cfg.VaultPath = *fc.Vault
	}
	if fc.Reader.SpeedMS != nil {
		cfg.Reader.Speed = time.Duration(*fc.Reader.SpeedMS) * time.Millisecond
	}
	if fc.Reader.SessionMinutes != nil {
		cfg.Reader.SessionMinutes = *fc.Reader.SessionMinutes
	}

	cfg.Backend = envString("READTRACK_BACKEND", cfg.Backend)
	cfg.LogLevel = envString("READTRACK_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envString("READTRACK_LOG_FILE", cfg.LogFile)
	cfg.VaultPath = envString("READTRACK_VAULT", cfg.VaultPath)
	if ms, ok, err := envInt("READTRACK_SPEED_MS"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.Reader.Speed = time.Duration(ms) * time.Millisecond
	}
	if minutes, ok, err := envInt("READTRACK_SESSION_MINUTES"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.Reader.SessionMinutes = minutes
	}

	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envInt(key string) (int, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, true, nil
}
