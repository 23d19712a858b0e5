package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/vidshare/fixture-seeder/internal/app"
	"github.com/vidshare/fixture-seeder/internal/cache"
	"github.com/vidshare/fixture-seeder/internal/config"
	"github.com/vidshare/fixture-seeder/internal/db"
	"github.com/vidshare/fixture-seeder/internal/logger"
	"github.com/vidshare/fixture-seeder/internal/server"
	"github.com/vidshare/fixture-seeder/internal/service/health"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		logger.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	var redisCache *cache.RedisCache
	if cfg.Seed.PrimeCache {
		redisCache = cache.NewRedisCache(cfg)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("failed to connect to redis", "err", err)
			return
		}
	}

	appCtx := app.New(database, redisCache, logger.With("cmd", "server"))
	healthReg := health.NewRegistrar(appCtx)
	defer healthReg.Shutdown()

	if cfg.App.ENV == "development" {
		healthReg.ReportSeed(appCtx.Reseed(ctx, cfg.Seed))
	}

	addr := cfg.GRPC.Host + ":" + cfg.GRPC.Port
	logger.Info("starting gRPC server", "addr", addr)

	if err := server.StartGRPCServer(ctx, cfg, healthReg); err != nil {
		logger.Error("failed to start gRPC server", "err", err)
	}
}
