package models

import (
	"time"

	"github.com/lib/pq"
)

// Channel merepresentasikan tabel 'channels'
type Channel struct {
	ID           string  `db:"channel_id" json:"channelId"`
	Name         string  `db:"name" json:"name"`
	ThumbnailURL *string `db:"thumbnail_url" json:"thumbnailUrl,omitempty"`
}

// Video merepresentasikan tabel 'videos'
type Video struct {
	ID           string         `db:"video_id" json:"videoId"`
	ChannelID    string         `db:"channel_id" json:"channelId"`
	Title        string         `db:"title" json:"title"`
	PublishedAt  *time.Time     `db:"published_at" json:"publishedAt,omitempty"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	DurationSec  int            `db:"duration_sec" json:"durationSec"`
	ThumbnailURL *string        `db:"thumbnail_url" json:"thumbnailUrl,omitempty"`
}

// VideoStat merepresentasikan satu baris di tabel 'video_stats'.
// Timestamp diisi oleh database saat insert.
type VideoStat struct {
	VideoID      string    `db:"video_id" json:"videoId"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
	ViewCount    int64     `db:"view_count" json:"viewCount"`
	LikeCount    int64     `db:"like_count" json:"likeCount"`
	CommentCount int64     `db:"comment_count" json:"commentCount"`
}

// Metrics adalah metrik turunan untuk satu video.
type Metrics struct {
	VPH            int64   `json:"vph"`
	LikeRate       float64 `json:"likeRate"`
	CommentRate    float64 `json:"commentRate"`
	ViewsPerMinute int64   `json:"viewsPerMinute"`
}

// VideoRanking adalah satu baris di tabel ranking VPH.
type VideoRanking struct {
	Rank        int        `json:"rank"`
	VideoID     string     `json:"videoId"`
	Title       string     `json:"title"`
	ChannelName string     `json:"channelName"`
	LikeCount   int64      `json:"likeCount"`
	ViewCount   int64      `json:"viewCount"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Metrics
}

// VideoDetail adalah struct gabungan untuk halaman detail video.
type VideoDetail struct {
	Video
	ChannelName *string    `db:"channel_name" json:"channelName,omitempty"`
	LatestStat  *VideoStat `db:"-" json:"latestStat,omitempty"`
	Metrics     *Metrics   `db:"-" json:"metrics,omitempty"`
}

// CollectResult adalah ringkasan satu kali jalan collector.
type CollectResult struct {
	Videos           []Video
	Channels         []Channel
	Stats            []VideoStat
	FailedCategories []string
}
