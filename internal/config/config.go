// Package config loads the service configuration from environment
// variables, with an optional .env file for local runs.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/samsarahq/go/oops"
)

// Config holds every setting the entry points read. TableName is allowed
// to be empty here: the create handler reports it per request as a
// configuration error instead of refusing to start.
type Config struct {
	TableName   string `koanf:"table_name"`
	QueueName   string `koanf:"queue_name"`
	Addr        string `koanf:"addr" validate:"omitempty,hostname_port"`
	ServiceName string `koanf:"service_name"`
}

// Load reads TABLE_NAME, QUEUE_NAME, ADDR and SERVICE_NAME from the
// environment and applies defaults for the last two.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, oops.Wrapf(err, "load env")
	}

	cfg := &Config{
		Addr:        ":8080",
		ServiceName: "peliculas",
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Wrapf(err, "unmarshal config")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, oops.Wrapf(err, "validate config")
	}

	return cfg, nil
}
