package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readtrack/internal/platform/config"
	apperrors "readtrack/internal/platform/errors"
)

func TestNewDerivesPathsFromDataDir(t *testing.T) {
	t.Parallel()
	cfg, err := config.New("/srv/readtrack")
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join("/srv/readtrack", "readtrack.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/srv/readtrack", "state"), cfg.StateDir)
	assert.Equal(t, 25, cfg.Reader.SessionMinutes)
	assert.Equal(t, 100*time.Millisecond, cfg.Reader.Speed)

	_, err = config.New("  ")
	require.Error(t, err)
}

func TestLoadYAMLFileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "backend: file\nlog_level: debug\nreader:\n  speed_ms: 40\n  session_minutes: 30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(config.Options{ConfigPath: path, DataDir: dir})
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 40*time.Millisecond, cfg.Reader.Speed)
	assert.Equal(t, 30, cfg.Reader.SessionMinutes)

	cfg, err = config.Load(config.Options{ConfigPath: path, DataDir: dir, Backend: config.BackendMemory})
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
}

func TestLoadTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "backend = \"memory\"\n\n[reader]\nsession-minutes = 45\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(config.Options{ConfigPath: path, DataDir: dir})
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
	assert.Equal(t, 45, cfg.Reader.SessionMinutes)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("READTRACK_SESSION_MINUTES=50\n"), 0o644))
	t.Setenv("READTRACK_BACKEND", "file")
	t.Setenv("READTRACK_SESSION_MINUTES", "")
	require.NoError(t, os.Unsetenv("READTRACK_SESSION_MINUTES"))

	cfg, err := config.Load(config.Options{EnvFile: envFile, DataDir: dir})
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Backend)
	assert.Equal(t, 50, cfg.Reader.SessionMinutes)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(config.Options{ConfigPath: filepath.Join(dir, "absent.yaml"), DataDir: dir})
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Backend)
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)

	bad := cfg
	bad.Reader.SessionMinutes = 90
	assert.True(t, errors.Is(bad.Validate(), apperrors.ErrInvalidInput))

	bad = cfg
	bad.Backend = "postgres"
	assert.True(t, errors.Is(bad.Validate(), apperrors.ErrInvalidInput))

	bad = cfg
	bad.Reader.Speed = 5 * time.Millisecond
	assert.Error(t, bad.Validate())
}
