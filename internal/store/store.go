// Package store persists extracted video records in SQLite, keyed by
// video id. Re-extraction of a known video refreshes its row; fields the
// new extraction could not resolve keep their stored values.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tikradar/internal/extract"
)

// Store wraps the videos database. Safe for concurrent use; SQLite gets a
// single writer connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS videos (
		video_id              TEXT PRIMARY KEY,
		url                   TEXT NOT NULL,
		title                 TEXT,
		description           TEXT,
		author_username       TEXT,
		author_display_name   TEXT,
		author_verified       INTEGER,
		author_follower_count INTEGER,
		view_count            INTEGER,
		like_count            INTEGER,
		comment_count         INTEGER,
		share_count           INTEGER,
		duration              INTEGER,
		upload_time           TEXT,
		thumbnail_url         TEXT,
		extracted_at          TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_videos_author ON videos(author_username);
	CREATE INDEX IF NOT EXISTS idx_videos_views  ON videos(view_count);
	CREATE INDEX IF NOT EXISTS idx_videos_upload ON videos(upload_time)`)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Upsert writes one record. On conflict the row is refreshed, but a NULL
// in the fresh extraction never erases a previously resolved value.
func (s *Store) Upsert(ctx context.Context, rec *extract.Record) error {
	if rec == nil || rec.VideoID == "" {
		return fmt.Errorf("store: record without video id")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `INSERT INTO videos (
		video_id, url, title, description,
		author_username, author_display_name, author_verified, author_follower_count,
		view_count, like_count, comment_count, share_count,
		duration, upload_time, thumbnail_url, extracted_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(video_id) DO UPDATE SET
		url                   = excluded.url,
		title                 = COALESCE(NULLIF(excluded.title, ''), title),
		description           = COALESCE(NULLIF(excluded.description, ''), description),
		author_username       = COALESCE(NULLIF(excluded.author_username, ''), author_username),
		author_display_name   = COALESCE(NULLIF(excluded.author_display_name, ''), author_display_name),
		author_verified       = COALESCE(excluded.author_verified, author_verified),
		author_follower_count = COALESCE(excluded.author_follower_count, author_follower_count),
		view_count            = COALESCE(excluded.view_count, view_count),
		like_count            = COALESCE(excluded.like_count, like_count),
		comment_count         = COALESCE(excluded.comment_count, comment_count),
		share_count           = COALESCE(excluded.share_count, share_count),
		duration              = COALESCE(excluded.duration, duration),
		upload_time           = COALESCE(excluded.upload_time, upload_time),
		thumbnail_url         = COALESCE(NULLIF(excluded.thumbnail_url, ''), thumbnail_url),
		extracted_at          = excluded.extracted_at,
		updated_at            = excluded.updated_at`,
		rec.VideoID, rec.URL, rec.Title, rec.Description,
		rec.AuthorUsername, rec.AuthorDisplayName, boolArg(rec.AuthorVerified), intArg(rec.AuthorFollowerCount),
		intArg(rec.ViewCount), intArg(rec.LikeCount), intArg(rec.CommentCount), intArg(rec.ShareCount),
		intArg(rec.Duration), timeArg(rec.UploadTime), rec.ThumbnailURL,
		rec.ExtractedAt.UTC().Format(time.RFC3339), now,
	)
	if err != nil {
		return fmt.Errorf("store: upsert %s: %w", rec.VideoID, err)
	}
	return nil
}

// Query narrows a Videos listing. Zero values mean "no constraint".
type Query struct {
	MinViews int64
	Since    time.Time
	Author   string
	Limit    int
}

const selectCols = `video_id, url, title, description,
	author_username, author_display_name, author_verified, author_follower_count,
	view_count, like_count, comment_count, share_count,
	duration, upload_time, thumbnail_url, extracted_at`

// Videos returns stored records matching q, most viewed first.
func (s *Store) Videos(ctx context.Context, q Query) ([]extract.Record, error) {
	where := "1=1"
	var args []any
	if q.MinViews > 0 {
		where += " AND view_count >= ?"
		args = append(args, q.MinViews)
	}
	if !q.Since.IsZero() {
		where += " AND upload_time >= ?"
		args = append(args, q.Since.UTC().Format(time.RFC3339))
	}
	if q.Author != "" {
		where += " AND author_username = ?"
		args = append(args, q.Author)
	}

	limit := q.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT ` + selectCols + ` FROM videos WHERE ` + where +
			` ORDER BY view_count DESC, video_id LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query videos: %w", err)
	}
	defer rows.Close()

	var out []extract.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan video: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Video returns one record by id, or nil when unknown.
func (s *Store) Video(ctx context.Context, videoID string) (*extract.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ` + selectCols + ` FROM videos WHERE video_id = ?`, videoID)
	if err != nil {
		return nil, fmt.Errorf("store: query video: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, fmt.Errorf("store: scan video: %w", err)
	}
	return &rec, nil
}

// Count reports how many videos are stored.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

func scanRecord(rows *sql.Rows) (extract.Record, error) {
	var (
		rec                        extract.Record
		title, desc, user, nick    sql.NullString
		thumb, uploadRaw           sql.NullString
		verified                   sql.NullInt64
		followers, views, likes    sql.NullInt64
		comments, shares, duration sql.NullInt64
		extractedRaw               string
	)
	if err := rows.Scan(&rec.VideoID, &rec.URL, &title, &desc,
		&user, &nick, &verified, &followers,
		&views, &likes, &comments, &shares,
		&duration, &uploadRaw, &thumb, &extractedRaw); err != nil {
		return rec, err
	}

	rec.Title = title.String
	rec.Description = desc.String
	rec.AuthorUsername = user.String
	rec.AuthorDisplayName = nick.String
	rec.ThumbnailURL = thumb.String
	if verified.Valid {
		b := verified.Int64 != 0
		rec.AuthorVerified = &b
	}
	rec.AuthorFollowerCount = fromNull(followers)
	rec.ViewCount = fromNull(views)
	rec.LikeCount = fromNull(likes)
	rec.CommentCount = fromNull(comments)
	rec.ShareCount = fromNull(shares)
	rec.Duration = fromNull(duration)
	if uploadRaw.Valid && uploadRaw.String != "" {
		if t, err := time.Parse(time.RFC3339, uploadRaw.String); err == nil {
			rec.UploadTime = &t
		}
	}
	if t, err := time.Parse(time.RFC3339, extractedRaw); err == nil {
		rec.ExtractedAt = t
	}
	return rec, nil
}

func intArg(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolArg(v *bool) any {
	if v == nil {
		return nil
	}
	if *v {
		return int64(1)
	}
	return int64(0)
}

func timeArg(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(time.RFC3339)
}

func fromNull(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
