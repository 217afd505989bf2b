package analytics

import (
	"math"
	"testing"
	"time"

	"searchlight/internal/core/models"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestComputeMetrics_VPH(t *testing.T) {
	m := ComputeMetrics(models.VideoStat{ViewCount: 3600}, 60, 1)
	if m.VPH != 1800 {
		t.Errorf("VPH = %d, want 1800", m.VPH)
	}
}

func TestComputeMetrics_ZeroViews(t *testing.T) {
	m := ComputeMetrics(models.VideoStat{}, 0, 5)
	if m.VPH != 0 {
		t.Errorf("VPH = %d, want 0", m.VPH)
	}
	if m.LikeRate != 0 {
		t.Errorf("LikeRate = %.2f, want 0", m.LikeRate)
	}
	if m.CommentRate != 0 {
		t.Errorf("CommentRate = %.2f, want 0", m.CommentRate)
	}
	if m.ViewsPerMinute != 0 {
		t.Errorf("ViewsPerMinute = %d, want 0", m.ViewsPerMinute)
	}
}

func TestComputeMetrics_Rates(t *testing.T) {
	// likes = 99 / (9999 + 1) * 100 = 0.99
	// comments = 1234 / 10000 * 100 = 12.34
	m := ComputeMetrics(models.VideoStat{ViewCount: 9999, LikeCount: 99, CommentCount: 1234}, 0, 0)
	if !almostEqual(m.LikeRate, 0.99, 1e-9) {
		t.Errorf("LikeRate = %v, want 0.99", m.LikeRate)
	}
	if !almostEqual(m.CommentRate, 12.34, 1e-9) {
		t.Errorf("CommentRate = %v, want 12.34", m.CommentRate)
	}
}

func TestComputeMetrics_ViewsPerMinute(t *testing.T) {
	// 90 s = 1.5 min; 1000 / 1.51 = 662.25 -> 662
	m := ComputeMetrics(models.VideoStat{ViewCount: 1000}, 90, 0)
	if m.ViewsPerMinute != 662 {
		t.Errorf("ViewsPerMinute = %d, want 662", m.ViewsPerMinute)
	}

	// Zero duration is damped by +0.01 instead of dividing by zero.
	m = ComputeMetrics(models.VideoStat{ViewCount: 5}, 0, 0)
	if m.ViewsPerMinute != 500 {
		t.Errorf("ViewsPerMinute = %d, want 500 for zero duration", m.ViewsPerMinute)
	}
}

func TestComputeMetrics_JustPublished(t *testing.T) {
	// hours = 0 -> VPH equals the view count
	m := ComputeMetrics(models.VideoStat{ViewCount: 42}, 60, 0)
	if m.VPH != 42 {
		t.Errorf("VPH = %d, want 42", m.VPH)
	}
}

func TestComputeMetrics_RoundsHalfToEven(t *testing.T) {
	// 5 / (1 + 1) = 2.5 -> 2, 7 / 2 = 3.5 -> 4
	if m := ComputeMetrics(models.VideoStat{ViewCount: 5}, 60, 1); m.VPH != 2 {
		t.Errorf("VPH = %d, want 2", m.VPH)
	}
	if m := ComputeMetrics(models.VideoStat{ViewCount: 7}, 60, 1); m.VPH != 4 {
		t.Errorf("VPH = %d, want 4", m.VPH)
	}
}

func TestHoursSincePublished(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	published := now.Add(-90 * time.Minute)

	if got := HoursSincePublished(&published, now); !almostEqual(got, 1.5, 1e-9) {
		t.Errorf("HoursSincePublished = %v, want 1.5", got)
	}
	if got := HoursSincePublished(nil, now); got != 0 {
		t.Errorf("HoursSincePublished(nil) = %v, want 0", got)
	}
}

func TestHoursSincePublished_FutureIsZero(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ahead := now.Add(2 * time.Hour)

	if got := HoursSincePublished(&ahead, now); got != 0 {
		t.Errorf("HoursSincePublished(future) = %v, want 0", got)
	}

	m := ComputeMetrics(models.VideoStat{ViewCount: 3600}, 60, HoursSincePublished(&ahead, now))
	if m.VPH != 3600 {
		t.Errorf("VPH = %d, want 3600 for a video published ahead of now", m.VPH)
	}
}

func TestComputeMetrics_NegativeHoursClamped(t *testing.T) {
	m := ComputeMetrics(models.VideoStat{ViewCount: 3600}, 60, -5)
	if m.VPH != 3600 {
		t.Errorf("VPH = %d, want 3600", m.VPH)
	}
}
