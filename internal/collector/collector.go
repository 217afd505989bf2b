package collector

import (
	"context"
	"time"

	"github.com/Code-Hex/synchro"
	"github.com/Code-Hex/synchro/tz"
	"github.com/lib/pq"
	yt "google.golang.org/api/youtube/v3"

	"searchlight/internal/core/models"
	"searchlight/internal/logger"
	"searchlight/internal/metrics"
)

// VideoSource mengambil chart video terpopuler dari platform.
type VideoSource interface {
	MostPopular(ctx context.Context, categoryID, regionCode string, maxResults int64) ([]*yt.Video, error)
}

// Store adalah bagian dari database.Store yang dipakai collector.
type Store interface {
	UpsertChannels(ctx context.Context, channels []models.Channel) error
	UpsertVideos(ctx context.Context, videos []models.Video) error
	InsertVideoStats(ctx context.Context, stats []models.VideoStat) error
}

// Options mengatur kategori dan region yang dikumpulkan.
type Options struct {
	CategoryIDs []string
	RegionCode  string
	MaxResults  int64
}

// Collector mengambil video terpopuler per kategori lalu menyimpannya.
type Collector struct {
	source VideoSource
	store  Store
	opts   Options
}

// New membuat Collector baru.
func New(source VideoSource, store Store, opts Options) *Collector {
	return &Collector{source: source, store: store, opts: opts}
}

// Run menjalankan satu siklus penuh: kumpulkan semua kategori, lalu simpan.
// Kegagalan penyimpanan dicatat di log dan dikembalikan.
func (c *Collector) Run(ctx context.Context) (models.CollectResult, error) {
	start := time.Now()
	defer func() { metrics.CollectorDuration.Observe(time.Since(start).Seconds()) }()

	result := c.Collect(ctx)

	logger.Logger.Info().
		Int("videos", len(result.Videos)).
		Int("channels", len(result.Channels)).
		Strs("failed_categories", result.FailedCategories).
		Msg("collection finished")

	if len(result.Videos) == 0 {
		logger.Logger.Warn().Msg("no videos to save")
		metrics.CollectorRuns.WithLabelValues("empty").Inc()
		return result, nil
	}

	if err := c.Save(ctx, result); err != nil {
		logger.Logger.Error().Err(err).Msg("failed to save collected data")
		metrics.CollectorRuns.WithLabelValues("save_failed").Inc()
		return result, err
	}

	metrics.CollectorRuns.WithLabelValues("ok").Inc()
	return result, nil
}

// Collect mengambil chart untuk setiap kategori secara berurutan. Kategori
// yang gagal atau kosong dicatat di FailedCategories tanpa menghentikan
// kategori lain.
func (c *Collector) Collect(ctx context.Context) models.CollectResult {
	var (
		result   models.CollectResult
		records  []videoRecord
		channels []models.Channel
	)

	for _, categoryID := range c.opts.CategoryIDs {
		log := logger.Logger.With().Str("category", categoryID).Logger()
		log.Info().Msg("collecting most popular videos")

		items, err := c.source.MostPopular(ctx, categoryID, c.opts.RegionCode, c.opts.MaxResults)
		if err != nil {
			log.Error().Err(err).Msg("category collection failed")
			result.FailedCategories = append(result.FailedCategories, categoryID)
			metrics.CollectorFailedCategories.WithLabelValues(categoryID).Inc()
			continue
		}

		recs, ch := mapItems(items)
		if len(recs) == 0 {
			// Kategori ini mungkin tidak punya chart populer di region tersebut.
			log.Warn().Msg("category returned no videos")
			result.FailedCategories = append(result.FailedCategories, categoryID)
			metrics.CollectorFailedCategories.WithLabelValues(categoryID).Inc()
			continue
		}

		log.Info().Int("videos", len(recs)).Msg("category collected")
		records = append(records, recs...)
		channels = append(channels, ch...)
	}

	result.Videos, result.Stats = dedupVideos(records)
	result.Channels = dedupChannels(channels)
	metrics.CollectorVideos.Add(float64(len(result.Videos)))
	return result
}

// Save menulis channel, video, lalu statistik. Error pertama menghentikan
// penulisan berikutnya; tidak ada transaksi di antara ketiganya.
func (c *Collector) Save(ctx context.Context, result models.CollectResult) error {
	if err := c.store.UpsertChannels(ctx, result.Channels); err != nil {
		return err
	}
	logger.Logger.Info().Int("channels", len(result.Channels)).Msg("channels upserted")

	if err := c.store.UpsertVideos(ctx, result.Videos); err != nil {
		return err
	}
	logger.Logger.Info().Int("videos", len(result.Videos)).Msg("videos upserted")

	if err := c.store.InsertVideoStats(ctx, result.Stats); err != nil {
		return err
	}
	logger.Logger.Info().Int("stats", len(result.Stats)).Msg("video stats inserted")
	return nil
}

// videoRecord memasangkan baris video dengan statistik dari item yang sama.
type videoRecord struct {
	video models.Video
	stat  models.VideoStat
}

// mapItems mengubah item API menjadi baris video, channel, dan statistik.
func mapItems(items []*yt.Video) ([]videoRecord, []models.Channel) {
	var (
		records  []videoRecord
		channels []models.Channel
	)
	for _, item := range items {
		if item == nil || item.Id == "" || item.Snippet == nil || item.Snippet.ChannelId == "" {
			continue
		}
		sn := item.Snippet

		var duration string
		if item.ContentDetails != nil {
			duration = item.ContentDetails.Duration
		}

		video := models.Video{
			ID:           item.Id,
			ChannelID:    sn.ChannelId,
			Title:        sn.Title,
			PublishedAt:  parsePublishedAt(item.Id, sn.PublishedAt),
			Tags:         pq.StringArray(append([]string{}, sn.Tags...)),
			DurationSec:  ParseDuration(duration),
			ThumbnailURL: highThumbnail(sn.Thumbnails),
		}

		channels = append(channels, models.Channel{
			ID:   sn.ChannelId,
			Name: sn.ChannelTitle,
		})

		stat := models.VideoStat{VideoID: item.Id}
		if item.Statistics != nil {
			stat.ViewCount = int64(item.Statistics.ViewCount)
			stat.LikeCount = int64(item.Statistics.LikeCount)
			stat.CommentCount = int64(item.Statistics.CommentCount)
		}
		records = append(records, videoRecord{video: video, stat: stat})
	}
	return records, channels
}

func parsePublishedAt(videoID, s string) *time.Time {
	if s == "" {
		return nil
	}
	pa, err := synchro.ParseISO[tz.UTC](s)
	if err != nil {
		logger.Logger.Warn().Err(err).
			Str("video_id", videoID).
			Str("published_at", s).
			Msg("failed to parse publishedAt")
		return nil
	}
	t := pa.StdTime()
	return &t
}

func highThumbnail(th *yt.ThumbnailDetails) *string {
	if th == nil || th.High == nil || th.High.Url == "" {
		return nil
	}
	url := th.High.Url
	return &url
}

// dedupChannels membuang channel ganda; data terakhir menang, urutan
// kemunculan pertama dipertahankan.
func dedupChannels(channels []models.Channel) []models.Channel {
	index := make(map[string]int, len(channels))
	var out []models.Channel
	for _, ch := range channels {
		if ch.ID == "" {
			continue
		}
		if i, ok := index[ch.ID]; ok {
			out[i] = ch
			continue
		}
		index[ch.ID] = len(out)
		out = append(out, ch)
	}
	return out
}

// dedupVideos membuang video ganda (video yang muncul di lebih dari satu
// kategori) beserta statistiknya; data terakhir menang, urutan kemunculan
// pertama dipertahankan.
func dedupVideos(records []videoRecord) ([]models.Video, []models.VideoStat) {
	index := make(map[string]int, len(records))
	var (
		videos []models.Video
		stats  []models.VideoStat
	)
	for _, rec := range records {
		if j, ok := index[rec.video.ID]; ok {
			videos[j] = rec.video
			stats[j] = rec.stat
			continue
		}
		index[rec.video.ID] = len(videos)
		videos = append(videos, rec.video)
		stats = append(stats, rec.stat)
	}
	return videos, stats
}
