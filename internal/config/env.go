package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the process-level configuration of the server module and tools.
type Env struct {
	CatalogPath    string `env:"COSANOSTRA_CATALOG_PATH"     envDefault:"data/cards.json"`
	GameConfigPath string `env:"COSANOSTRA_GAME_CONFIG_PATH"`
	Seed           int64  `env:"COSANOSTRA_SEED"`
	RedisAddr      string `env:"COSANOSTRA_REDIS_ADDR"`
	RedisPrefix    string `env:"COSANOSTRA_REDIS_PREFIX"     envDefault:"cosanostra:session:"`
	LogLevel       string `env:"COSANOSTRA_LOG_LEVEL"        envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvMap loads configuration from an explicit variable map, such as the
// runtime env a Nakama module receives.
func ParseEnvMap(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
