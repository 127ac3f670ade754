package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	OTLP    OTLPConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            string        `envconfig:"SERVER_PORT" default:"3000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	// DurationMetric enables the millisecond request duration histogram
	DurationMetric bool `envconfig:"METRICS_DURATION_MS" default:"false"`
}

type StoreConfig struct {
	Driver         string        `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI       string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase  string        `envconfig:"MONGO_DATABASE" default:"ourdb"`
	ConnectTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

type OTLPConfig struct {
	Enabled     bool   `envconfig:"OTEL_ENABLED" default:"false"`
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"products-api"`
	Environment string `envconfig:"OTEL_ENVIRONMENT" default:"development"`
}

type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"debug"`
}

// Addr returns the listen address of the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LoadConfig loads configuration from environment variables.
// Values from a .env file in the working directory are applied first without overriding the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// sections are processed one by one so keys are not prefixed with the section name
	var cfg Config
	for _, section := range []any{&cfg.Server, &cfg.Store, &cfg.OTLP, &cfg.Logging} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to process environment: %w", err)
		}
	}

	switch cfg.Store.Driver {
	case StoreDriverMongo, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	return &cfg, nil
}
