package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"searchlight/internal/collector"
	"searchlight/internal/config"
	"searchlight/internal/core/database"
	"searchlight/internal/logger"
	"searchlight/internal/metrics"
	"searchlight/internal/youtube"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadCollector()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, "searchlight-collector")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.NewDBStore(ctx, cfg.DSN())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("could not connect to the database")
	}
	defer store.Close()

	ytClient, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("could not create the YouTube client")
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollector(reg)
	if cfg.MetricsPort != "" {
		go serveMetrics(ctx, reg, cfg.MetricsPort)
	}

	c := collector.New(ytClient, store, collector.Options{
		CategoryIDs: cfg.CategoryIDs,
		RegionCode:  cfg.RegionCode,
		MaxResults:  cfg.MaxResults,
	})

	logger.Logger.Info().Msg("--- Running initial collection ---")
	runOnce(ctx, c)

	if cfg.Schedule == "" {
		return
	}

	logger.Logger.Info().Str("schedule", cfg.Schedule).Msg("starting cron job scheduler")
	scheduler := cron.New(cron.WithSeconds())
	_, err = scheduler.AddFunc(cfg.Schedule, func() {
		logger.Logger.Info().Msg("--- Running scheduled collection ---")
		runOnce(ctx, c)
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("could not add cron job")
	}

	scheduler.Start()
	<-ctx.Done()

	logger.Logger.Info().Msg("shutting down, waiting for a running collection to finish")
	<-scheduler.Stop().Done()
}

// runOnce menjalankan satu siklus collector. Error sudah dicatat di Run,
// proses tetap berjalan untuk jadwal berikutnya.
func runOnce(ctx context.Context, c *collector.Collector) {
	if ctx.Err() != nil {
		return
	}
	result, err := c.Run(ctx)
	if err != nil {
		return
	}
	logger.Logger.Info().
		Int("videos", len(result.Videos)).
		Int("channels", len(result.Channels)).
		Int("stats", len(result.Stats)).
		Strs("failed_categories", result.FailedCategories).
		Msg("--- Collection finished ---")
}

func serveMetrics(ctx context.Context, reg *prometheus.Registry, port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Logger.Info().Str("port", port).Msg("serving collector metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Logger.Error().Err(err).Msg("metrics server failed")
	}
}
