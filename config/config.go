// Package config holds the environment-driven application configuration,
// split by concern: auth.go (login and tokens), database.go (Postgres and
// Redis), http.go (server binding). Values are loaded with
// github.com/caarlos0/env; bootstrap loads a .env file first in dev.
package config

import (
	"os"
	"strings"
)

// AppConfig composes the per-concern configuration blocks.
type AppConfig struct {
	// IsDev relaxes startup checks and enables verbose logging. Set
	// DEV=true, or NODE_ENV=development for parity with the frontend
	// tooling that deploys alongside this service.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth AuthConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig
}

// Sanitize applies guardrails after the raw env load.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
