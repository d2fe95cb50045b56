package vtclient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerWritesTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtclient.log")
	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	logger.Info("hello %s", "world")
	logger.Error("code=%d", 7)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "INFO: hello world")
	assert.Contains(t, out, "ERROR: code=7")
}

func TestFileLoggerAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtclient.log")

	first, err := NewFileLogger(path)
	require.NoError(t, err)
	first.Info("first")
	require.NoError(t, first.Close())

	second, err := NewFileLogger(path)
	require.NoError(t, err)
	second.Info("second")
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}

func TestLogTransitionFormatsSnakeCaseStates(t *testing.T) {
	got := logTransition(Disconnected, Failed)
	assert.Equal(t, "disconnected -> failed", got)
	assert.Contains(t, logTransition(SendGetMemory, WaitForGetMemoryResponse), "send_get_memory -> ")
}
