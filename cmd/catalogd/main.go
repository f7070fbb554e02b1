// Command catalogd serves the product catalog API: SQLite as the
// authoritative store, a pluggable cache backend in front of point
// lookups.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fluxmart/catalog"
	"github.com/fluxmart/catalog/codec"
	"github.com/fluxmart/catalog/config"
	asynchook "github.com/fluxmart/catalog/hooks/async"
	"github.com/fluxmart/catalog/hooks/sloghook"
	"github.com/fluxmart/catalog/httpapi"
	zaplog "github.com/fluxmart/catalog/log/zap"
	"github.com/fluxmart/catalog/provider"
	"github.com/fluxmart/catalog/provider/bigcache"
	redisprovider "github.com/fluxmart/catalog/provider/redis"
	"github.com/fluxmart/catalog/provider/ristretto"
	"github.com/fluxmart/catalog/sqlite"
)

// seedProducts populates an empty database on first boot.
var seedProducts = []catalog.ProductInput{
	{Name: "Wireless Headphones", Description: "High-quality wireless headphones with noise cancellation", Price: 99.99, Stock: 50},
	{Name: "Smart Watch", Description: "Fitness tracking smartwatch with heart rate monitor", Price: 199.99, Stock: 30},
	{Name: "Laptop Stand", Description: "Ergonomic aluminum laptop stand for better posture", Price: 49.99, Stock: 100},
	{Name: "USB-C Hub", Description: "7-in-1 USB-C hub with HDMI, USB 3.0, and SD card reader", Price: 39.99, Stock: 75},
	{Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard with blue switches", Price: 129.99, Stock: 40},
}

func main() {
	zl, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(zl); err != nil {
		zl.Fatal("catalogd exited", zap.Error(err))
	}
}

func run(zl *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if cfg.SeedOnStart {
		if err := seed(ctx, store, zl); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	prov, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("init cache backend: %w", err)
	}

	hooks := asynchook.New(sloghook.New(slog.Default(), sloghook.Options{
		FetchErrorEvery:       10,
		PopulateRejectedEvery: 10,
	}), 1, 1024)
	defer hooks.Close()

	svc, err := catalog.New(catalog.Options{
		Store:     store,
		Provider:  prov,
		Codec:     newCodec(cfg),
		Logger:    zaplog.ZapLogger{L: zl},
		Hooks:     hooks,
		TTL:       cfg.CacheTTL,
		OpTimeout: cfg.CacheOpTimeout,
	})
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}
	defer func() { _ = svc.Close(context.Background()) }()

	if prov == nil {
		zl.Info("cache disabled; all reads go to the store")
	} else if svc.CacheAvailable(ctx) {
		zl.Info("cache backend available", zap.String("backend", cfg.CacheBackend))
	} else {
		zl.Warn("cache backend unavailable at startup; serving degraded",
			zap.String("backend", cfg.CacheBackend))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.APIPort),
		Handler:           httpapi.New(svc, zaplog.ZapLogger{L: zl}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("catalogd listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func seed(ctx context.Context, store *sqlite.Store, zl *zap.Logger) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		zl.Info("database already populated", zap.Int("products", n))
		return nil
	}
	if err := store.Seed(ctx, seedProducts); err != nil {
		return err
	}
	zl.Info("seeded initial products", zap.Int("products", len(seedProducts)))
	return nil
}

func newProvider(cfg config.Config) (provider.Provider, error) {
	switch cfg.CacheBackend {
	case "off":
		return nil, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:        cfg.RedisAddr,
			DialTimeout: cfg.CacheOpTimeout,
			ReadTimeout: cfg.CacheOpTimeout,
		})
		return redisprovider.New(redisprovider.Config{Client: client, CloseClient: true})
	case "bigcache":
		return bigcache.New(bigcache.Config{LifeWindow: cfg.CacheTTL})
	case "ristretto":
		return ristretto.New(ristretto.Config{
			NumCounters: 1e6,
			MaxCost:     64 << 20,
			BufferItems: 64,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

func newCodec(cfg config.Config) codec.Codec[catalog.Product] {
	switch cfg.CacheCodec {
	case "msgpack":
		return codec.Msgpack[catalog.Product]{}
	case "cbor":
		return codec.MustCBOR[catalog.Product](false)
	default:
		return codec.JSON[catalog.Product]{}
	}
}
