package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIPort != 8080 {
		t.Fatalf("APIPort default: %d", cfg.APIPort)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("CacheTTL default: %v", cfg.CacheTTL)
	}
	if cfg.CacheBackend != "redis" || cfg.CacheCodec != "json" {
		t.Fatalf("backend/codec defaults: %q %q", cfg.CacheBackend, cfg.CacheCodec)
	}
	if !cfg.SeedOnStart {
		t.Fatalf("SeedOnStart should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("CACHE_BACKEND", "ristretto")
	t.Setenv("CACHE_CODEC", "msgpack")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIPort != 9090 || cfg.CacheBackend != "ristretto" || cfg.CacheCodec != "msgpack" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("CacheTTL override: %v", cfg.CacheTTL)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")
	if _, err := Load(); err == nil {
		t.Fatalf("unknown backend should be rejected")
	}
}
