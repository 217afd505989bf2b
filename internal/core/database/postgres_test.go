package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"searchlight/internal/core/models"
)

func newMockStore(t *testing.T) (*DBStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &DBStore{db: sqlx.NewDb(db, "pgx")}, mock
}

func strPtr(s string) *string { return &s }

func TestUpsertChannels_ConflictKeepsThumbnail(t *testing.T) {
	store, mock := newMockStore(t)

	query := `INSERT INTO channels \(channel_id, name, thumbnail_url\) VALUES .* ` +
		`ON CONFLICT \(channel_id\) DO UPDATE SET name = EXCLUDED\.name, ` +
		regexp.QuoteMeta(`thumbnail_url = COALESCE(EXCLUDED.thumbnail_url, channels.thumbnail_url)`)
	mock.ExpectExec(query).
		WithArgs("ch-1", "One", nil, "ch-2", "Two", "https://yt3.ggpht.com/two.jpg").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := store.UpsertChannels(context.Background(), []models.Channel{
		{ID: "ch-1", Name: "One"},
		{ID: "ch-2", Name: "Two", ThumbnailURL: strPtr("https://yt3.ggpht.com/two.jpg")},
	})
	if err != nil {
		t.Fatalf("UpsertChannels failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpsertVideos_ConflictOnVideoID(t *testing.T) {
	store, mock := newMockStore(t)
	published := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	query := `INSERT INTO videos \(video_id, channel_id, title, published_at, tags, duration_sec, thumbnail_url\) VALUES .* ` +
		`ON CONFLICT \(video_id\) DO UPDATE SET`
	mock.ExpectExec(query).
		WithArgs("vid-1", "ch-1", "Cats", published, `{"cat","funny"}`, int64(90), "https://i.ytimg.com/vi/vid-1/hqdefault.jpg").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpsertVideos(context.Background(), []models.Video{{
		ID:           "vid-1",
		ChannelID:    "ch-1",
		Title:        "Cats",
		PublishedAt:  &published,
		Tags:         pq.StringArray{"cat", "funny"},
		DurationSec:  90,
		ThumbnailURL: strPtr("https://i.ytimg.com/vi/vid-1/hqdefault.jpg"),
	}})
	if err != nil {
		t.Fatalf("UpsertVideos failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUpsertVideos_WrapsError(t *testing.T) {
	store, mock := newMockStore(t)
	dbErr := errors.New("violates foreign key constraint")
	mock.ExpectExec(`INSERT INTO videos`).WillReturnError(dbErr)

	err := store.UpsertVideos(context.Background(), []models.Video{{ID: "vid-1", ChannelID: "missing"}})
	if !errors.Is(err, dbErr) {
		t.Errorf("err = %v, want wrapped %v", err, dbErr)
	}
}

func TestInsertVideoStats_PlainInsert(t *testing.T) {
	store, mock := newMockStore(t)

	// Tanpa ON CONFLICT: setiap pengambilan menambah baris baru.
	query := `^` + regexp.QuoteMeta(`INSERT INTO video_stats (video_id, view_count, like_count, comment_count) VALUES ($1, $2, $3, $4)`) + `$`
	mock.ExpectExec(query).
		WithArgs("vid-1", int64(3600), int64(120), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.InsertVideoStats(context.Background(), []models.VideoStat{
		{VideoID: "vid-1", ViewCount: 3600, LikeCount: 120, CommentCount: 7},
	})
	if err != nil {
		t.Fatalf("InsertVideoStats failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestWrites_EmptyBatchIsNoop(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	if err := store.UpsertChannels(ctx, nil); err != nil {
		t.Errorf("UpsertChannels(nil) = %v", err)
	}
	if err := store.UpsertVideos(ctx, nil); err != nil {
		t.Errorf("UpsertVideos(nil) = %v", err)
	}
	if err := store.InsertVideoStats(ctx, nil); err != nil {
		t.Errorf("InsertVideoStats(nil) = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

var (
	detailColumns = []string{"video_id", "channel_id", "title", "published_at", "tags", "duration_sec", "thumbnail_url", "channel_name"}
	statColumns   = []string{"video_id", "timestamp", "view_count", "like_count", "comment_count"}

	detailQuery = `FROM videos v LEFT JOIN channels c ON c\.channel_id = v\.channel_id WHERE v\.video_id = \$1`
	latestQuery = regexp.QuoteMeta(`FROM video_stats WHERE video_id = $1 ORDER BY timestamp DESC NULLS LAST LIMIT 1`)
)

func TestGetVideoDetail_WithLatestStat(t *testing.T) {
	store, mock := newMockStore(t)
	published := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	sampled := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(detailQuery).
		WithArgs("vid-1").
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow("vid-1", "ch-1", "Cats", published, []byte(`{cat,funny}`), int64(90), "https://i.ytimg.com/vi/vid-1/hqdefault.jpg", "Cat Channel"))
	mock.ExpectQuery(latestQuery).
		WithArgs("vid-1").
		WillReturnRows(sqlmock.NewRows(statColumns).
			AddRow("vid-1", sampled, int64(3600), int64(120), int64(7)))

	detail, err := store.GetVideoDetail(context.Background(), "vid-1")
	if err != nil {
		t.Fatalf("GetVideoDetail failed: %v", err)
	}
	if detail.ID != "vid-1" || detail.Title != "Cats" || detail.DurationSec != 90 {
		t.Errorf("unexpected video: %+v", detail.Video)
	}
	if detail.ChannelName == nil || *detail.ChannelName != "Cat Channel" {
		t.Errorf("ChannelName = %v, want Cat Channel", detail.ChannelName)
	}
	if len(detail.Tags) != 2 || detail.Tags[1] != "funny" {
		t.Errorf("Tags = %v, want [cat funny]", detail.Tags)
	}
	if detail.PublishedAt == nil || !detail.PublishedAt.Equal(published) {
		t.Errorf("PublishedAt = %v, want %v", detail.PublishedAt, published)
	}
	if detail.LatestStat == nil || detail.LatestStat.ViewCount != 3600 || !detail.LatestStat.Timestamp.Equal(sampled) {
		t.Errorf("LatestStat = %+v", detail.LatestStat)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetVideoDetail_NoStats(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(detailQuery).
		WithArgs("vid-1").
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow("vid-1", "ch-1", "Cats", nil, nil, int64(0), nil, nil))
	mock.ExpectQuery(latestQuery).
		WithArgs("vid-1").
		WillReturnRows(sqlmock.NewRows(statColumns))

	detail, err := store.GetVideoDetail(context.Background(), "vid-1")
	if err != nil {
		t.Fatalf("GetVideoDetail failed: %v", err)
	}
	if detail.LatestStat != nil {
		t.Errorf("LatestStat = %+v, want nil", detail.LatestStat)
	}
	if detail.PublishedAt != nil || detail.ChannelName != nil {
		t.Errorf("nullable columns should stay nil: %+v", detail)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetVideoDetail_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(detailQuery).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(detailColumns))

	_, err := store.GetVideoDetail(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListVideoStats(t *testing.T) {
	store, mock := newMockStore(t)
	sampled := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM video_stats$`).
		WillReturnRows(sqlmock.NewRows(statColumns).
			AddRow("vid-1", sampled, int64(10), int64(1), int64(0)).
			AddRow("vid-1", sampled.Add(time.Hour), int64(20), int64(2), int64(1)))

	stats, err := store.ListVideoStats(context.Background())
	if err != nil {
		t.Fatalf("ListVideoStats failed: %v", err)
	}
	if len(stats) != 2 || stats[1].ViewCount != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
