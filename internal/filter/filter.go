// Package filter narrows a batch of extracted records to the ones worth
// keeping: deduplicated, popular enough, fresh enough.
package filter

import (
	"time"

	"tikradar/internal/extract"
)

// Thresholds are the keep criteria. Zero values disable a criterion.
type Thresholds struct {
	// MinViews drops records below the view floor. Records with no
	// resolved view count cannot prove they clear it and are dropped.
	MinViews int64

	// MaxAge drops records uploaded before now-MaxAge. Records with no
	// resolved upload time are dropped when an age bound is set.
	MaxAge time.Duration
}

// Apply returns the records passing t, first occurrence of each video id
// winning. Input order is preserved.
func Apply(recs []*extract.Record, t Thresholds, now time.Time) []*extract.Record {
	seen := make(map[string]bool, len(recs))
	out := make([]*extract.Record, 0, len(recs))

	for _, r := range recs {
		if r == nil || r.VideoID == "" || seen[r.VideoID] {
			continue
		}
		seen[r.VideoID] = true
		if !keep(r, t, now) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func keep(r *extract.Record, t Thresholds, now time.Time) bool {
	if t.MinViews > 0 {
		if r.ViewCount == nil || *r.ViewCount < t.MinViews {
			return false
		}
	}
	if t.MaxAge > 0 {
		if r.UploadTime == nil || r.UploadTime.Before(now.Add(-t.MaxAge)) {
			return false
		}
	}
	return true
}
