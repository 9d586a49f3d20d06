package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"recruitflow-go/internal/platform/errors"
)

// Loader reads configuration from defaults, an optional YAML file, an
// optional .env file and finally environment variable overrides, in that
// order of precedence (last wins).
type Loader struct {
	useDotEnv bool
	path      string
}

// NewLoader creates a loader for the default config path.
func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      "config.yaml",
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the YAML file location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load builds the effective configuration.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		// a missing .env file is fine, the environment still applies
		_ = godotenv.Load()
	}

	cfg := DefaultConfig()
	path := ""

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.KindConfig, "load", "invalid config file", err)
		}
		path = l.path
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.KindConfig, "load", "read config file", err)
	}

	applyEnvOverrides(cfg)

	return &Result{Config: cfg, Path: path}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RECRUITFLOW_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("RECRUITFLOW_SOCKET_URL"); v != "" {
		cfg.Realtime.SocketURL = v
	}
	if v := os.Getenv("RECRUITFLOW_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.RequestTimeout = d
		}
	}
	if v := os.Getenv("RECRUITFLOW_MAX_RECONNECTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Realtime.MaxReconnectAttempts = n
		}
	}
	if v := os.Getenv("RECRUITFLOW_CREDENTIALS_FILE"); v != "" {
		cfg.Session.CredentialsFile = v
	}
	if v := os.Getenv("RECRUITFLOW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RECRUITFLOW_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
}
