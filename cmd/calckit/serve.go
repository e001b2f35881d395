package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calckit/internal/calculators"
	"calckit/internal/config"
	"calckit/internal/prefs"
	"calckit/internal/registry"
	"calckit/internal/server"
	"calckit/internal/state"
	"calckit/internal/tables"
	"calckit/pkg/logger"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cat := tables.Builtin()
	tablesOverride := overridesPath
	if tablesOverride == "" {
		tablesOverride = cfg.TablesPath
	}
	if tablesOverride != "" {
		if err := cat.LoadOverrides(tablesOverride); err != nil {
			zapLogger.Fatal("Failed to load table overrides", zap.Error(err))
		}
		zapLogger.Info("Loaded table overrides", zap.String("path", tablesOverride))
	}

	reg := registry.New()
	if err := calculators.RegisterAll(reg, cat); err != nil {
		zapLogger.Fatal("Failed to register calculators", zap.Error(err))
	}

	defaultCurrency, err := prefs.ParseCurrency(cfg.DefaultCurrency)
	if err != nil {
		zapLogger.Fatal("Invalid default currency", zap.Error(err))
	}
	prefsStore, err := prefs.NewStore(defaultCurrency)
	if err != nil {
		zapLogger.Fatal("Failed to init currency preference", zap.Error(err))
	}

	states, redisStore, err := buildStateStore(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to init state store", zap.Error(err))
	}
	defer states.Close()

	var limiter server.Limiter
	if cfg.RateLimitEnabled {
		if redisStore != nil {
			limiter = server.NewRedisLimiter(redisStore.Client(), cfg.RateLimitPerMin, cfg.RateLimitWindow)
		} else {
			memLimiter := server.NewMemoryLimiter(int(cfg.RateLimitPerMin), cfg.RateLimitWindow)
			defer memLimiter.Stop()
			limiter = memLimiter
		}
	}

	srv := server.New(server.Options{
		Addr:            cfg.HTTPAddr,
		Registry:        reg,
		States:          states,
		Prefs:           prefsStore,
		Logger:          zapLogger,
		Limiter:         limiter,
		MaxStateBytes:   int64(cfg.MaxStateBytes),
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	if err := srv.Start(ctx); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}

	zapLogger.Info("Server shutdown gracefully")
	return nil
}

// buildStateStore assembles the configured backend. The Redis store is
// returned separately when one is dialed so the rate limiter can share
// its client.
func buildStateStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (state.Store, *state.RedisStore, error) {
	switch cfg.StateBackend {
	case config.BackendMemory:
		return state.NewMemory(), nil, nil

	case config.BackendRedis:
		rs, err := dialRedis(ctx, cfg, zapLogger)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs, nil

	case config.BackendPostgres:
		ps, err := dialPostgres(ctx, cfg, zapLogger)
		if err != nil {
			return nil, nil, err
		}
		return ps, nil, nil

	case config.BackendCached:
		rs, err := dialRedis(ctx, cfg, zapLogger)
		if err != nil {
			return nil, nil, err
		}
		ps, err := dialPostgres(ctx, cfg, zapLogger)
		if err != nil {
			rs.Close()
			return nil, nil, err
		}
		return state.NewCached(rs, ps, zapLogger), rs, nil

	default:
		return nil, nil, fmt.Errorf("unsupported state backend %q", cfg.StateBackend)
	}
}

func dialRedis(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (*state.RedisStore, error) {
	rs := state.NewRedis(cfg)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 2 * time.Minute
	policy.MaxInterval = 15 * time.Second

	zapLogger.Info("Connecting to Redis...", zap.String("addr", cfg.RedisAddr))
	err := backoff.RetryNotify(
		func() error { return rs.Ping(ctx) },
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			zapLogger.Warn("Redis connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		rs.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	zapLogger.Info("Successfully connected to Redis")
	return rs, nil
}

func dialPostgres(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (*state.PostgresStore, error) {
	ps, err := state.NewPostgres(ctx, cfg, zapLogger)
	if err != nil {
		return nil, err
	}

	if err := state.RunMigrations(ctx, ps.DB(), zapLogger); err != nil {
		ps.Close()
		return nil, err
	}

	go purgeLoop(ctx, ps, cfg.StateTTL, zapLogger)
	return ps, nil
}

// purgeLoop gives Postgres the same TTL behavior Redis gets natively.
func purgeLoop(ctx context.Context, ps *state.PostgresStore, ttl time.Duration, zapLogger *zap.Logger) {
	interval := ttl / 4
	if interval > time.Hour {
		interval = time.Hour
	}
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := ps.PurgeOlderThan(ctx, ttl)
			if err != nil {
				zapLogger.Warn("State purge failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				zapLogger.Info("Purged expired state", zap.Int64("rows", purged))
			}
		}
	}
}
