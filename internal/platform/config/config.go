package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Log    LogConfig
}

// DBConfig: una sola URI; el esquema decide el backend (mongodb, postgres, sqlite, memory).
type DBConfig struct {
	URI            string        `envconfig:"ANIME_DB_URI" required:"true"`
	Name           string        `envconfig:"ANIME_DB_NAME" default:"animelist"`
	ConnectTimeout time.Duration `envconfig:"ANIME_DB_CONNECT_TIMEOUT" default:"10s"`
}

type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
	App    string `envconfig:"APP_NAME" default:"anime-tracker"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Load lee la config del entorno. Falla si falta ANIME_DB_URI.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to load db config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}

	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.DB.URI == "" {
		return fmt.Errorf("ANIME_DB_URI is required")
	}
	if c.DB.ConnectTimeout <= 0 {
		return fmt.Errorf("ANIME_DB_CONNECT_TIMEOUT must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	return nil
}
