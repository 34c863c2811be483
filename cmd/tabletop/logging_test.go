package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	logFile := setupLogging(false, "session")
	assert.Nil(t, logFile)
	assert.Equal(t, io.Discard, log.Writer())

	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err))
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	logFile := setupLogging(true, "01TESTSESSION")
	require.NotNil(t, logFile)
	defer logFile.Close()
	defer setupLogging(false, "")

	slog.Info("table ready", "cards", 10)
	log.Println("standard logger line")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "table ready")
	assert.Contains(t, content, "session=01TESTSESSION")
	assert.Contains(t, content, "standard logger line")
}

func TestSetupLogging_Rotation(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(logDir, 0755))

	logPath := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644))

	logFile := setupLogging(true, "session")
	require.NotNil(t, logFile)
	defer logFile.Close()
	defer setupLogging(false, "")

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	rotated := 0
	for _, entry := range entries {
		if entry.Name() != logFileName && strings.HasSuffix(entry.Name(), ".log") {
			rotated++
		}
	}
	assert.Equal(t, 1, rotated)

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	t.Chdir(t.TempDir())

	logFile := setupLogging(true, "session")
	require.NotNil(t, logFile)
	defer logFile.Close()
	defer setupLogging(false, "")

	assert.NotEqual(t, os.Stdout, log.Writer())
	assert.NotEqual(t, os.Stderr, log.Writer())
}
