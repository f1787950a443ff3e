package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/angelmondragon/shopstate/api/controllers"
	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/catalog/mockgateway"
	"github.com/angelmondragon/shopstate/internal/catalog/sqlgateway"
	"github.com/angelmondragon/shopstate/pkg/config"
	"github.com/angelmondragon/shopstate/pkg/db"
	"github.com/angelmondragon/shopstate/pkg/logger"
	"github.com/angelmondragon/shopstate/pkg/metrics"
	"github.com/angelmondragon/shopstate/pkg/migrate"
	"github.com/angelmondragon/shopstate/pkg/redis"
)

type closer interface {
	Close() error
}

// buildGateway assembles backend -> optional redis cache -> instrumentation.
// Backends that can be pinged are registered in ready.
func buildGateway(ctx context.Context, cfg *config.Config, logg *logger.Logger, m *metrics.GatewayMetrics, ready map[string]controllers.Pinger) (catalog.Gateway, func(), error) {
	var closers []closer
	cleanup := func() {
		var errs error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = multierr.Append(errs, closers[i].Close())
		}
		if errs != nil {
			logg.Error(ctx, "error closing gateway resources", errs)
		}
	}

	var backend catalog.Gateway
	if cfg.Gateway.UsesSQL() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, cleanup, fmt.Errorf("bootstrap database: %w", err)
		}
		closers = append(closers, dbClient)
		ready["database"] = dbClient

		if err := migrate.MaybeRunAuto(ctx, cfg, logg, dbClient); err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("auto migrate: %w", err)
		}
		repo, err := sqlgateway.New(dbClient)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		backend = repo
	} else {
		backend = mockgateway.New(mockgateway.LatenciesFromConfig(cfg.Gateway))
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("bootstrap redis: %w", err)
		}
		closers = append(closers, redisClient)
		ready["redis"] = redisClient

		cached, err := catalog.NewCachedGateway(catalog.CachedParams{
			Inner:   backend,
			Cache:   redisClient,
			TTL:     cfg.Redis.CatalogTTL,
			Logger:  logg,
			Metrics: m,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		backend = cached
	}

	return catalog.NewInstrumentedGateway(backend, logg, m), cleanup, nil
}
