package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/vidshare/fixture-seeder/internal/app"
	"github.com/vidshare/fixture-seeder/internal/cache"
	"github.com/vidshare/fixture-seeder/internal/config"
	"github.com/vidshare/fixture-seeder/internal/db"
	svcErr "github.com/vidshare/fixture-seeder/internal/errors"
	"github.com/vidshare/fixture-seeder/internal/logger"
)

var errProduction = errors.New("reset disabled in production")

func main() {
	// Load configuration
	cfg := config.New()

	logger.InitFromConfig(cfg)

	if err := run(cfg, logger.With("cmd", "seed")); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	if cfg.IsProduction() {
		log.Error("refusing to reset fixtures in production", "env", cfg.App.ENV)
		return errProduction
	}

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "driver", cfg.DB.Driver, "err", err)
		return err
	}

	ctx := context.Background()

	var redisCache *cache.RedisCache
	if cfg.Seed.PrimeCache {
		redisCache = cache.NewRedisCache(cfg)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Error("failed to connect to redis", "addr", cfg.Redis.Addr, "err", err)
			return err
		}
	}

	report, err := app.New(database, redisCache, log).Reseed(ctx, cfg.Seed)
	if err != nil {
		log.Error("failed to seed", "class", svcErr.Classify(err), "err", err)
		return err
	}

	log.Info("Seeding completed.", "run_id", report.RunID, "atomic", report.Atomic, "took", report.Duration)
	return nil
}
