package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"searchlight/internal/analytics"
	"searchlight/internal/cache"
	"searchlight/internal/config"
	"searchlight/internal/core/database"
	"searchlight/internal/logger"
	"searchlight/internal/metrics"
	"searchlight/internal/webapp"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadWebApp()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, "searchlight-webapp")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.NewDBStore(ctx, cfg.DSN())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("could not connect to the database")
	}
	defer store.Close()

	rankingCache := cache.New(ctx, cfg.RedisURL)
	defer rankingCache.Close()

	sessions, err := webapp.NewSessions(cfg.Password, cfg.SessionSecret)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("could not set up sessions")
	}
	if cfg.SessionSecret == "" {
		logger.Logger.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterWebApp(reg)

	svc := analytics.NewService(store, rankingCache)
	app, err := webapp.NewApplication(store, svc, sessions, reg, cfg.CORSOrigins)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("could not build the application")
	}

	logger.Logger.Info().Str("port", cfg.Port).Msg("starting dashboard server")
	if err := app.Serve(ctx, cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Logger.Fatal().Err(err).Msg("could not start server")
	}
	logger.Logger.Info().Msg("dashboard server stopped")
}
