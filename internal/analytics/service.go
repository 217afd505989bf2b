package analytics

import (
	"context"
	"time"

	"searchlight/internal/cache"
	"searchlight/internal/core/models"
	"searchlight/internal/logger"
	"searchlight/internal/metrics"
)

// RankingCacheTTL adalah lama ranking disimpan di cache.
const RankingCacheTTL = 10 * time.Minute

const rankingCacheKey = "searchlight:ranking:videos"

// Source adalah bagian dari database.Store yang dibaca dashboard.
type Source interface {
	ListVideos(ctx context.Context) ([]models.Video, error)
	ListVideoStats(ctx context.Context) ([]models.VideoStat, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	GetVideoDetail(ctx context.Context, videoID string) (*models.VideoDetail, error)
}

// Service menyajikan ranking VPH dan detail video untuk dashboard.
type Service struct {
	source Source
	cache  cache.Cache
	now    func() time.Time
}

// NewService membuat Service baru. cache boleh nil.
func NewService(source Source, c cache.Cache) *Service {
	return &Service{
		source: source,
		cache:  c,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// VideoRanking mengembalikan ranking VPH. Setiap error dari database
// dicatat di log dan menghasilkan ranking kosong.
func (s *Service) VideoRanking(ctx context.Context) []models.VideoRanking {
	if s.cache != nil {
		var cached []models.VideoRanking
		ok, err := s.cache.Get(ctx, rankingCacheKey, &cached)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("cache: ranking get error")
		} else if ok {
			metrics.RankingCacheHits.Inc()
			return cached
		}
	}
	metrics.RankingCacheMisses.Inc()

	logger.Logger.Info().Msg("loading ranking data from database")
	rows, err := s.loadRanking(ctx)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("failed to load video ranking")
		return []models.VideoRanking{}
	}
	metrics.RankingRows.Set(float64(len(rows)))

	if len(rows) == 0 {
		logger.Logger.Warn().Msg("not enough data in the database to build a ranking")
		return rows
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rankingCacheKey, rows, RankingCacheTTL); err != nil {
			logger.Logger.Warn().Err(err).Msg("cache: ranking set error")
		}
	}
	logger.Logger.Info().Int("rows", len(rows)).Msg("ranking computed")
	return rows
}

func (s *Service) loadRanking(ctx context.Context) ([]models.VideoRanking, error) {
	videos, err := s.source.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.source.ListVideoStats(ctx)
	if err != nil {
		return nil, err
	}
	channels, err := s.source.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(videos, stats, channels, s.now()), nil
}

// VideoDetail mengambil satu video berdasarkan ID dan menambahkan metrik
// dari statistik terbarunya.
func (s *Service) VideoDetail(ctx context.Context, videoID string) (*models.VideoDetail, error) {
	detail, err := s.source.GetVideoDetail(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if detail.LatestStat != nil {
		m := ComputeMetrics(*detail.LatestStat, detail.DurationSec, HoursSincePublished(detail.PublishedAt, s.now()))
		detail.Metrics = &m
	}
	return detail, nil
}

// InvalidateRanking membuang ranking dari cache.
func (s *Service) InvalidateRanking(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, rankingCacheKey)
}
