package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tikradar/internal/extract"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "videos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func i64(v int64) *int64 { return &v }

func testRecord(id string, views int64) *extract.Record {
	return &extract.Record{
		VideoID:        id,
		URL:            "https://www.tiktok.com/@u/video/" + id,
		Title:          "clip " + id,
		AuthorUsername: "u",
		ViewCount:      i64(views),
		ExtractedAt:    time.Now().UTC(),
	}
}

func TestUpsertAndReadBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	verified := true
	upload := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	rec := &extract.Record{
		VideoID:             "7340000000000000001",
		URL:                 "https://www.tiktok.com/@jane/video/7340000000000000001",
		Title:               "morning routine",
		Description:         "grwm",
		AuthorUsername:      "jane",
		AuthorDisplayName:   "Jane",
		AuthorVerified:      &verified,
		AuthorFollowerCount: i64(88000),
		ViewCount:           i64(150000),
		LikeCount:           i64(2500000),
		CommentCount:        i64(0),
		ShareCount:          i64(340),
		Duration:            i64(47),
		UploadTime:          &upload,
		ThumbnailURL:        "https://p16.example.com/c.jpg",
		ExtractedAt:         time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Upsert(ctx, rec))

	got, err := s.Video(ctx, rec.VideoID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Title, got.Title)
	assert.Equal(t, rec.AuthorUsername, got.AuthorUsername)
	require.NotNil(t, got.AuthorVerified)
	assert.True(t, *got.AuthorVerified)
	require.NotNil(t, got.CommentCount)
	assert.Equal(t, int64(0), *got.CommentCount, "stored zero must stay zero")
	require.NotNil(t, got.UploadTime)
	assert.True(t, got.UploadTime.Equal(upload))
	assert.True(t, got.ExtractedAt.Equal(rec.ExtractedAt))
}

func TestUpsertRefreshKeepsResolvedFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testRecord("42", 1000)
	first.LikeCount = i64(500)
	first.Description = "original"
	require.NoError(t, s.Upsert(ctx, first))

	// Second extraction resolved views but lost likes and description.
	second := testRecord("42", 2000)
	second.Description = ""
	require.NoError(t, s.Upsert(ctx, second))

	got, err := s.Video(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.ViewCount)
	assert.Equal(t, int64(2000), *got.ViewCount)
	require.NotNil(t, got.LikeCount)
	assert.Equal(t, int64(500), *got.LikeCount, "resolved field erased by refresh")
	assert.Equal(t, "original", got.Description)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "upsert must not duplicate rows")
}

func TestVideosFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	a := testRecord("1", 100)
	a.UploadTime = &old
	b := testRecord("2", 5000)
	b.UploadTime = &fresh
	c := testRecord("3", 9000)
	c.AuthorUsername = "other"
	c.UploadTime = &fresh
	for _, r := range []*extract.Record{a, b, c} {
		require.NoError(t, s.Upsert(ctx, r))
	}

	got, err := s.Videos(ctx, Query{MinViews: 1000})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].VideoID, "most viewed first")
	assert.Equal(t, "2", got[1].VideoID)

	got, err = s.Videos(ctx, Query{Author: "u"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.Videos(ctx, Query{Since: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, got, 2, "since filter keeps only fresh uploads")

	got, err = s.Videos(ctx, Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].VideoID)
}

func TestVideoUnknown(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Video(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpsertRejectsMissingID(t *testing.T) {
	s := openTestStore(t)
	err := s.Upsert(context.Background(), &extract.Record{URL: "x"})
	require.Error(t, err)
}
