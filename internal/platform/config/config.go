package config

import (
	"time"

	"recruitflow-go/internal/platform/logging"
)

// Config is the full client configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Session  SessionConfig  `yaml:"session"`
	Log      logging.Config `yaml:"log"`
}

// APIConfig describes how to reach the recruitment backend.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// RealtimeConfig tunes the notification socket.
type RealtimeConfig struct {
	SocketURL            string        `yaml:"socket_url"`
	ReconnectInterval    time.Duration `yaml:"reconnect_interval"`
	MaxReconnectAttempts int           `yaml:"max_reconnect_attempts"`
	PingInterval         time.Duration `yaml:"ping_interval"`
	HandshakeTimeout     time.Duration `yaml:"handshake_timeout"`
}

// SessionConfig controls local credential persistence.
type SessionConfig struct {
	// CredentialsFile is where the token pair is persisted between runs.
	// Empty disables persistence.
	CredentialsFile string `yaml:"credentials_file"`
}
