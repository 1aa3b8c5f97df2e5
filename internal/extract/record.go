package extract

import "time"

// Record is the merged, best-effort metadata for a single video page.
// Count fields are pointers so a stored zero stays distinct from absent.
type Record struct {
	VideoID string `json:"video_id"`
	URL     string `json:"url"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	AuthorUsername      string `json:"author_username,omitempty"`
	AuthorDisplayName   string `json:"author_display_name,omitempty"`
	AuthorVerified      *bool  `json:"author_verified,omitempty"`
	AuthorFollowerCount *int64 `json:"author_follower_count,omitempty"`

	ViewCount    *int64 `json:"view_count,omitempty"`
	LikeCount    *int64 `json:"like_count,omitempty"`
	CommentCount *int64 `json:"comment_count,omitempty"`
	ShareCount   *int64 `json:"share_count,omitempty"`

	Duration   *int64     `json:"duration,omitempty"` // seconds
	UploadTime *time.Time `json:"upload_time,omitempty"`

	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// Fields holds one strategy's proposed values. Empty strings and nil
// pointers mean "no candidate" for that field.
type Fields struct {
	VideoID             string
	Title               string
	Description         string
	AuthorUsername      string
	AuthorDisplayName   string
	AuthorVerified      *bool
	AuthorFollowerCount *int64
	ViewCount           *int64
	LikeCount           *int64
	CommentCount        *int64
	ShareCount          *int64
	Duration            *int64
	UploadTime          *time.Time
	ThumbnailURL        string
}

// fill copies every candidate into the record unless the record already
// resolved that field. Returns the number of fields newly set.
func (r *Record) fill(f Fields) int {
	n := 0
	setStr := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
			n++
		}
	}
	setStr(&r.VideoID, f.VideoID)
	setStr(&r.Title, f.Title)
	setStr(&r.Description, f.Description)
	setStr(&r.AuthorUsername, f.AuthorUsername)
	setStr(&r.AuthorDisplayName, f.AuthorDisplayName)
	setStr(&r.ThumbnailURL, f.ThumbnailURL)

	if r.AuthorVerified == nil && f.AuthorVerified != nil {
		r.AuthorVerified = f.AuthorVerified
		n++
	}
	setCount := func(dst **int64, v *int64) {
		if *dst == nil && v != nil {
			*dst = v
			n++
		}
	}
	setCount(&r.AuthorFollowerCount, f.AuthorFollowerCount)
	setCount(&r.ViewCount, f.ViewCount)
	setCount(&r.LikeCount, f.LikeCount)
	setCount(&r.CommentCount, f.CommentCount)
	setCount(&r.ShareCount, f.ShareCount)
	setCount(&r.Duration, f.Duration)

	if r.UploadTime == nil && f.UploadTime != nil {
		r.UploadTime = f.UploadTime
		n++
	}
	return n
}

// useful reports whether the record carries at least one of the minimal
// required fields: an engagement count, an author identity, or a title.
func (r *Record) useful() bool {
	return r.ViewCount != nil || r.LikeCount != nil ||
		r.CommentCount != nil || r.ShareCount != nil ||
		r.AuthorUsername != "" || r.Title != ""
}

// EngagementRate returns total engagement per view as a percentage,
// or false when the view count is absent or zero.
func (r *Record) EngagementRate() (float64, bool) {
	if r.ViewCount == nil || *r.ViewCount == 0 {
		return 0, false
	}
	var total int64
	for _, c := range []*int64{r.LikeCount, r.CommentCount, r.ShareCount} {
		if c != nil {
			total += *c
		}
	}
	return float64(total) / float64(*r.ViewCount) * 100, true
}
