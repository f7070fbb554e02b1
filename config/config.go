// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the catalogd binary needs to start.
type Config struct {
	APIPort int `env:"API_PORT" envDefault:"8080"`

	// Cache backend: "redis", "bigcache", "ristretto" or "off".
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"redis"`
	// Cache entry serialization: "json", "msgpack" or "cbor".
	CacheCodec     string        `env:"CACHE_CODEC" envDefault:"json"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	CacheOpTimeout time.Duration `env:"CACHE_OP_TIMEOUT" envDefault:"250ms"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"redis:6379"`

	DatabasePath string `env:"DATABASE_PATH" envDefault:"products.db"`
	SeedOnStart  bool   `env:"SEED_ON_START" envDefault:"true"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.CacheBackend {
	case "redis", "bigcache", "ristretto", "off":
	default:
		return Config{}, fmt.Errorf("unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}
	switch cfg.CacheCodec {
	case "json", "msgpack", "cbor":
	default:
		return Config{}, fmt.Errorf("unknown CACHE_CODEC %q", cfg.CacheCodec)
	}
	return cfg, nil
}
