package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Level:    "debug",
		Dir:      tmpDir,
		Filename: "test.log",
	})

	assert.NoError(t, err)
	assert.NotNil(t, logger)

	err = logger.Close()
	assert.NoError(t, err)
}

func TestNew_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Dir:      tmpDir,
		Filename: "default.log",
	})

	assert.NoError(t, err)
	assert.NotNil(t, logger)

	err = logger.Close()
	assert.NoError(t, err)
}

func TestLogger_Info(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Level:    "info",
		Dir:      tmpDir,
		Filename: "info.log",
	})
	require.NoError(t, err)
	defer logger.Close()

	testMsg := "test info message"
	logger.Info("%s", testMsg)

	time.Sleep(10 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), testMsg)
}

func TestLogger_FormatArgs(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Level:    "debug",
		Dir:      tmpDir,
		Filename: "fmt.log",
	})
	require.NoError(t, err)
	defer logger.Close()

	logger.Warn("retrying in %dms", 1500)

	time.Sleep(10 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, "fmt.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "retrying in 1500ms")
}

func TestLogger_LevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Level:    "warn",
		Dir:      tmpDir,
		Filename: "filter.log",
	})
	require.NoError(t, err)
	defer logger.Close()

	logger.Debug("should be filtered")
	logger.Warn("should appear")

	time.Sleep(10 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, "filter.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "should be filtered")
	assert.Contains(t, string(content), "should appear")
}

func TestFormatTag(t *testing.T) {
	assert.Equal(t, "[HTTP] sending request", FormatTag("HTTP", "sending request"))
	assert.Equal(t, "[WS] already tagged", FormatTag("AUTH", "[WS] already tagged"))
	assert.Equal(t, "no tag", FormatTag("", "no tag"))
}

func TestLogger_TaggedNilReceiver(t *testing.T) {
	var logger *Logger
	// tagged helpers tolerate a nil logger
	logger.InfoTag("HTTP", "ignored")
	logger.WarnTag("WS", "ignored")
}
