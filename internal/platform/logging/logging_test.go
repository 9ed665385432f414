package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"readtrack/internal/platform/logging"
)

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "readtrack.log")
	logger, err := logging.New("info", path)
	require.NoError(t, err)
	logger.Info("desk opened")
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), "desk opened"))
	require.False(t, strings.Contains(string(b), "hidden at info level"))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	_, err := logging.New("chatty", "")
	require.Error(t, err)
}
