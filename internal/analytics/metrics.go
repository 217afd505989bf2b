package analytics

import (
	"math"
	"time"

	"searchlight/internal/core/models"
)

// HoursSincePublished menghitung jam sejak publikasi relatif terhadap now.
// Waktu publikasi yang kosong atau di masa depan dianggap 0 jam.
func HoursSincePublished(publishedAt *time.Time, now time.Time) float64 {
	if publishedAt == nil {
		return 0
	}
	return math.Max(0, now.Sub(*publishedAt).Seconds()/3600)
}

// ComputeMetrics menghitung metrik turunan untuk satu video.
//
//	VPH              = round(views / (hours + 1))
//	like_rate        = round(likes / (views + 1) * 100, 2)
//	comment_rate     = round(comments / (views + 1) * 100, 2)
//	views_per_minute = round(views / (duration_sec/60 + 0.01))
func ComputeMetrics(stat models.VideoStat, durationSec int, hoursSincePublished float64) models.Metrics {
	views := float64(stat.ViewCount)
	hoursSincePublished = math.Max(0, hoursSincePublished)
	return models.Metrics{
		VPH:            int64(math.RoundToEven(views / (hoursSincePublished + 1))),
		LikeRate:       round2(float64(stat.LikeCount) / (views + 1) * 100),
		CommentRate:    round2(float64(stat.CommentCount) / (views + 1) * 100),
		ViewsPerMinute: int64(math.RoundToEven(views / (float64(durationSec)/60 + 0.01))),
	}
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
