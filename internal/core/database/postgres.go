package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"searchlight/internal/core/models"
	"searchlight/internal/logger"
)

const (
	maxRetries    = 5
	retryInterval = 2 * time.Second
)

// ErrNotFound dikembalikan jika baris yang dicari tidak ada.
var ErrNotFound = errors.New("record not found")

// Store mendefinisikan semua fungsi untuk berinteraksi dengan database.
type Store interface {
	Ping(ctx context.Context) error
	Close() error

	UpsertChannels(ctx context.Context, channels []models.Channel) error
	UpsertVideos(ctx context.Context, videos []models.Video) error
	InsertVideoStats(ctx context.Context, stats []models.VideoStat) error

	ListVideos(ctx context.Context) ([]models.Video, error)
	ListVideoStats(ctx context.Context) ([]models.VideoStat, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	GetVideoDetail(ctx context.Context, videoID string) (*models.VideoDetail, error)
}

// DBStore adalah implementasi dari Store menggunakan PostgreSQL.
type DBStore struct {
	db *sqlx.DB
}

// NewDBStore membuat instance baru dari DBStore. Koneksi dicoba ulang
// beberapa kali sebelum menyerah.
func NewDBStore(ctx context.Context, databaseURL string) (*DBStore, error) {
	var (
		db  *sqlx.DB
		err error
	)
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = sqlx.ConnectContext(ctx, "pgx", databaseURL)
		if err == nil {
			logger.Logger.Info().Msg("successfully connected to the database")
			return &DBStore{db: db}, nil
		}

		logger.Logger.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", maxRetries).
			Msg("database connection attempt failed")
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryInterval):
			}
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// Ping memeriksa koneksi ke database.
func (s *DBStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close menutup koneksi database.
func (s *DBStore) Close() error {
	return s.db.Close()
}

// UpsertChannels menyisipkan channel baru atau memperbarui yang sudah ada.
func (s *DBStore) UpsertChannels(ctx context.Context, channels []models.Channel) error {
	if len(channels) == 0 {
		return nil
	}
	query := `INSERT INTO channels (channel_id, name, thumbnail_url) VALUES (:channel_id, :name, :thumbnail_url) ON CONFLICT (channel_id) DO UPDATE SET name = EXCLUDED.name, thumbnail_url = COALESCE(EXCLUDED.thumbnail_url, channels.thumbnail_url), updated_at = NOW()`
	if _, err := s.db.NamedExecContext(ctx, query, channels); err != nil {
		return fmt.Errorf("upsert channels: %w", err)
	}
	return nil
}

// UpsertVideos menyisipkan video baru atau memperbarui yang sudah ada.
func (s *DBStore) UpsertVideos(ctx context.Context, videos []models.Video) error {
	if len(videos) == 0 {
		return nil
	}
	query := `INSERT INTO videos (video_id, channel_id, title, published_at, tags, duration_sec, thumbnail_url) VALUES (:video_id, :channel_id, :title, :published_at, :tags, :duration_sec, :thumbnail_url) ON CONFLICT (video_id) DO UPDATE SET channel_id = EXCLUDED.channel_id, title = EXCLUDED.title, published_at = EXCLUDED.published_at, tags = EXCLUDED.tags, duration_sec = EXCLUDED.duration_sec, thumbnail_url = EXCLUDED.thumbnail_url, updated_at = NOW()`
	if _, err := s.db.NamedExecContext(ctx, query, videos); err != nil {
		return fmt.Errorf("upsert videos: %w", err)
	}
	return nil
}

// InsertVideoStats selalu menambah baris baru; statistik tidak pernah diperbarui.
func (s *DBStore) InsertVideoStats(ctx context.Context, stats []models.VideoStat) error {
	if len(stats) == 0 {
		return nil
	}
	query := `INSERT INTO video_stats (video_id, view_count, like_count, comment_count) VALUES (:video_id, :view_count, :like_count, :comment_count)`
	if _, err := s.db.NamedExecContext(ctx, query, stats); err != nil {
		return fmt.Errorf("insert video stats: %w", err)
	}
	return nil
}

// ListVideos mengambil semua video tanpa batas.
func (s *DBStore) ListVideos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video
	query := `SELECT video_id, COALESCE(channel_id, '') AS channel_id, COALESCE(title, '') AS title, published_at, tags, COALESCE(duration_sec, 0) AS duration_sec, thumbnail_url FROM videos`
	err := s.db.SelectContext(ctx, &videos, query)
	return videos, err
}

// ListVideoStats mengambil seluruh riwayat statistik video.
func (s *DBStore) ListVideoStats(ctx context.Context) ([]models.VideoStat, error) {
	var stats []models.VideoStat
	query := `SELECT COALESCE(video_id, '') AS video_id, COALESCE(timestamp, 'epoch'::timestamptz) AS timestamp, COALESCE(view_count, 0) AS view_count, COALESCE(like_count, 0) AS like_count, COALESCE(comment_count, 0) AS comment_count FROM video_stats`
	err := s.db.SelectContext(ctx, &stats, query)
	return stats, err
}

// ListChannels mengambil semua channel.
func (s *DBStore) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	query := `SELECT channel_id, COALESCE(name, '') AS name, thumbnail_url FROM channels`
	err := s.db.SelectContext(ctx, &channels, query)
	return channels, err
}

// GetVideoDetail mengambil satu video berdasarkan primary key beserta
// nama channel dan statistik terbarunya.
func (s *DBStore) GetVideoDetail(ctx context.Context, videoID string) (*models.VideoDetail, error) {
	var detail models.VideoDetail
	queryVideo := `SELECT v.video_id, COALESCE(v.channel_id, '') AS channel_id, COALESCE(v.title, '') AS title, v.published_at, v.tags, COALESCE(v.duration_sec, 0) AS duration_sec, v.thumbnail_url, c.name AS channel_name FROM videos v LEFT JOIN channels c ON c.channel_id = v.channel_id WHERE v.video_id = $1`
	err := s.db.GetContext(ctx, &detail, queryVideo, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var stat models.VideoStat
	queryStat := `SELECT video_id, COALESCE(timestamp, 'epoch'::timestamptz) AS timestamp, COALESCE(view_count, 0) AS view_count, COALESCE(like_count, 0) AS like_count, COALESCE(comment_count, 0) AS comment_count FROM video_stats WHERE video_id = $1 ORDER BY timestamp DESC NULLS LAST LIMIT 1`
	err = s.db.GetContext(ctx, &stat, queryStat, videoID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Video belum punya statistik.
	case err != nil:
		return nil, err
	default:
		detail.LatestStat = &stat
	}

	return &detail, nil
}
