package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	ModeStdio = "stdio"
	ModeHTTP  = "http"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ConfigPathEnv names the optional YAML config file.
const ConfigPathEnv = "RENTLEDGER_CONFIG_PATH"

var (
	ErrInvalidMode    = errors.New("invalid transport mode")
	ErrInvalidBackend = errors.New("invalid store backend")
	ErrInvalidPort    = errors.New("invalid server port")
	ErrMissingDSN     = errors.New("postgres backend requires a dsn")
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"RENTLEDGER_SERVER_HOST"`
	Port int    `yaml:"port" env:"RENTLEDGER_SERVER_PORT"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" env:"RENTLEDGER_TRANSPORT_MODE"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" env:"RENTLEDGER_STORE_BACKEND"`
	Path    string `yaml:"path" env:"RENTLEDGER_DB_PATH"`
	DSN     string `yaml:"dsn" env:"RENTLEDGER_POSTGRES_DSN"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"RENTLEDGER_LOG_LEVEL"`
	Path  string `yaml:"path" env:"RENTLEDGER_LOG_PATH"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"RENTLEDGER_METRICS_ENABLED"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: ModeHTTP,
		},
		Store: StoreConfig{
			Backend: BackendSQLite,
			Path:    "rentledger.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown modes and backends and out-of-range ports.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case ModeStdio, ModeHTTP:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Transport.Mode)
	}

	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	case BackendPostgres:
		if c.Store.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Store.Backend)
	}

	if c.Transport.Mode == ModeHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
