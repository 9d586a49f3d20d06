package testing

import (
	"path/filepath"
	"testing"
	"time"

	"recruitflow-go/internal/platform/config"
	"recruitflow-go/internal/platform/logging"
)

func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = "http://127.0.0.1:8000"
	cfg.API.RequestTimeout = 5 * time.Second
	cfg.Realtime.ReconnectInterval = 10 * time.Millisecond
	cfg.Session.CredentialsFile = filepath.Join(t.TempDir(), "session.json")
	cfg.Log.Level = "debug"
	cfg.Log.Dir = t.TempDir()
	cfg.Log.Filename = "test.log"

	return cfg
}

func SetupTestLogger(t *testing.T) *logging.Logger {
	t.Helper()

	cfg := SetupTestConfig(t)
	logger, err := logging.New(cfg.Log)
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })

	return logger
}
