package app

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/vidshare/fixture-seeder/internal/auth"
	"github.com/vidshare/fixture-seeder/internal/cache"
	"github.com/vidshare/fixture-seeder/internal/config"
	"github.com/vidshare/fixture-seeder/internal/fixture"
	"github.com/vidshare/fixture-seeder/internal/repository"
	"github.com/vidshare/fixture-seeder/internal/seed"
)

// AppContext holds shared dependencies (DB, Redis, Logger).
// RedisCache may be nil when cache priming is off.
type AppContext struct {
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
}

// New creates a new AppContext
func New(db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
	}
}

// Reseed wipes the database and loads the fixture dataset into it.
//
// Behavior:
//  1. Builds the dataset, hashing passwords with bcrypt at sc.BcryptCost.
//  2. Optionally reconciles cached counters with the relation rows.
//  3. Runs the engine over GORM, in one transaction when sc.Transactional.
//  4. Re-primes the Redis counters when a cache is configured.
func (a *AppContext) Reseed(ctx context.Context, sc config.Seed) (*seed.Report, error) {
	ds, err := fixture.New(auth.BcryptHasher(sc.BcryptCost))
	if err != nil {
		return nil, fmt.Errorf("build fixture: %w", err)
	}
	if sc.ReconcileCounters {
		ds.ReconcileCounters()
		a.Logger.Debug("reconciled cached counters")
	}

	engine, err := seed.NewEngine(
		repository.NewGormGateway(a.DB),
		ds,
		seed.WithLogger(a.Logger),
		seed.WithTransaction(sc.Transactional),
	)
	if err != nil {
		return nil, err
	}

	report, err := engine.ResetAndSeed(ctx)
	if err != nil {
		return nil, err
	}

	if a.RedisCache != nil {
		if err := a.RedisCache.PrimeCounters(ctx, ds); err != nil {
			return report, fmt.Errorf("database seeded, cache priming failed: %w", err)
		}
		a.Logger.Info("primed counter cache", "run_id", report.RunID)
	}
	return report, nil
}
