package config

import (
	"time"

	"recruitflow-go/internal/platform/logging"
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 30 * time.Second,
		},
		Realtime: RealtimeConfig{
			SocketURL:            "ws://localhost:8000/ws/notifications/",
			ReconnectInterval:    1 * time.Second,
			MaxReconnectAttempts: 5,
			PingInterval:         30 * time.Second,
			HandshakeTimeout:     10 * time.Second,
		},
		Session: SessionConfig{
			CredentialsFile: "data/session.json",
		},
		Log: logging.Config{
			Level:    "info",
			Dir:      "data/logs",
			Filename: "recruitflow.log",
		},
	}
}
