package config

import (
	"encoding/hex"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds application configuration
type Config struct {
	Version          string        `env:"VERSION" envDefault:"0.1.0"`
	Port             int           `env:"PORT" envDefault:"8080" validate:"gt=0,lte=65535"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"dev" validate:"oneof=dev prod"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info" validate:"loglevel"`
	SentryDSN        string        `env:"SENTRY_DSN"`
	DatabaseURL      string        `env:"DATABASE_URL" validate:"required"`
	SessionSecret    string        `env:"SESSION_SECRET" validate:"required,sessionsecret"`
	SessionTTL       time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	EnforceOwnership bool          `env:"ENFORCE_OWNERSHIP" envDefault:"false"`
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
		return true
	}
	return false
}

// validateSessionSecret requires a hex string decoding to a valid AES key length.
func validateSessionSecret(fl validator.FieldLevel) bool {
	key, err := hex.DecodeString(fl.Field().String())
	if err != nil {
		return false
	}
	switch len(key) {
	case 16, 24, 32:
		return true
	}
	return false
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("sessionsecret", validateSessionSecret); err != nil {
		return nil, err
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsEnvProd() bool {
	if c.Environment == "prod" && c.SentryDSN != "" {
		return true
	}
	return false
}

// SecretKey returns the decoded session secret. NewConfig has already
// validated the hex encoding and key length.
func (c *Config) SecretKey() []byte {
	key, _ := hex.DecodeString(c.SessionSecret)
	return key
}
