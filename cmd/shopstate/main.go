package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/shopstate/api/controllers"
	"github.com/angelmondragon/shopstate/api/routes"
	"github.com/angelmondragon/shopstate/internal/controller"
	"github.com/angelmondragon/shopstate/internal/store"
	"github.com/angelmondragon/shopstate/pkg/config"
	"github.com/angelmondragon/shopstate/pkg/instance"
	"github.com/angelmondragon/shopstate/pkg/logger"
	"github.com/angelmondragon/shopstate/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "shopstate"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "shopstate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"gateway":  cfg.Gateway.Kind,
		"instance": instance.GetID(),
	})

	var (
		registerer prometheus.Registerer
		gatherer   prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		registerer, gatherer = reg, reg
	}

	ready := map[string]controllers.Pinger{}
	gateway, cleanup, err := buildGateway(ctx, cfg, logg, metrics.NewGatewayMetrics(registerer), ready)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap catalog gateway", err)
		os.Exit(1)
	}
	defer cleanup()

	st := store.New(
		store.WithLogger(logg),
		store.WithMetrics(metrics.NewStoreMetrics(registerer)),
	)
	defer watchState(st, logg)()

	ctrl, err := controller.New(controller.Params{
		Store:          st,
		Gateway:        gateway,
		Logger:         logg,
		Navigator:      logNavigator{logg: logg},
		Timing:         cfg.Timing,
		RequestTimeout: cfg.Gateway.RequestTimeout,
	})
	if err != nil {
		logg.Error(ctx, "failed to create controller", err)
		os.Exit(1)
	}
	defer ctrl.Close()

	// The home screen loads the catalog on mount.
	ctrl.Refresh(ctx)

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:   cfg,
			Logger:   logg,
			Engine:   ctrl,
			State:    st,
			Gatherer: gatherer,
			Ready:    ready,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", addr), "starting shopstate server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logg.Error(ctx, "shopstate server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "graceful shutdown failed", err)
	}
	logg.Info(shutdownCtx, "shopstate shutting down gracefully")
}
