package analytics

import (
	"sort"
	"time"

	"searchlight/internal/core/models"
)

// LatestStats memilih satu statistik per video, yaitu yang timestamp-nya
// paling baru. Jika timestamp sama, baris yang muncul belakangan menang.
func LatestStats(stats []models.VideoStat) map[string]models.VideoStat {
	latest := make(map[string]models.VideoStat, len(stats))
	for _, st := range stats {
		cur, ok := latest[st.VideoID]
		if !ok || !st.Timestamp.Before(cur.Timestamp) {
			latest[st.VideoID] = st
		}
	}
	return latest
}

// Rank menggabungkan video, statistik terbaru, dan channel, menghitung
// metrik, lalu mengurutkan berdasarkan VPH menurun. Video tanpa statistik
// atau tanpa channel yang cocok tidak ikut.
func Rank(videos []models.Video, stats []models.VideoStat, channels []models.Channel, now time.Time) []models.VideoRanking {
	if len(videos) == 0 || len(stats) == 0 || len(channels) == 0 {
		return []models.VideoRanking{}
	}

	latest := LatestStats(stats)
	channelNames := make(map[string]string, len(channels))
	for _, ch := range channels {
		channelNames[ch.ID] = ch.Name
	}

	rows := make([]models.VideoRanking, 0, len(videos))
	for _, v := range videos {
		st, ok := latest[v.ID]
		if !ok {
			continue
		}
		name, ok := channelNames[v.ChannelID]
		if !ok {
			continue
		}
		rows = append(rows, models.VideoRanking{
			VideoID:     v.ID,
			Title:       v.Title,
			ChannelName: name,
			LikeCount:   st.LikeCount,
			ViewCount:   st.ViewCount,
			PublishedAt: v.PublishedAt,
			Metrics:     ComputeMetrics(st, v.DurationSec, HoursSincePublished(v.PublishedAt, now)),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].VPH > rows[j].VPH
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
