package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector-side metrics.
var (
	CollectorRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchlight_collector_runs_total",
			Help: "Collector runs, by outcome (ok, save_failed, empty).",
		},
		[]string{"status"},
	)

	CollectorVideos = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searchlight_collector_videos_total",
			Help: "Videos collected from the most popular charts.",
		},
	)

	CollectorFailedCategories = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchlight_collector_failed_categories_total",
			Help: "Category fetches that failed or returned no items, by category id.",
		},
		[]string{"category"},
	)

	CollectorDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "searchlight_collector_run_duration_seconds",
			Help:    "Duration of a full collector run.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Dashboard-side metrics.
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "searchlight_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by route, method and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	RankingCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searchlight_ranking_cache_hits_total",
			Help: "Ranking lookups served from cache.",
		},
	)

	RankingCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searchlight_ranking_cache_misses_total",
			Help: "Ranking lookups that went to the database.",
		},
	)

	RankingRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "searchlight_ranking_rows",
			Help: "Rows in the most recently computed VPH ranking.",
		},
	)
)

// RegisterCollector mendaftarkan metrik collector ke reg.
func RegisterCollector(reg prometheus.Registerer) {
	reg.MustRegister(CollectorRuns, CollectorVideos, CollectorFailedCategories, CollectorDuration)
}

// RegisterWebApp mendaftarkan metrik dashboard ke reg.
func RegisterWebApp(reg prometheus.Registerer) {
	reg.MustRegister(RequestDuration, RankingCacheHits, RankingCacheMisses, RankingRows)
}
