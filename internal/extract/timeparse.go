package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var relativeTimeRe = regexp.MustCompile(`(?i)(\d+)\s*(hours?|days?|weeks?|時間|日|週間)\s*(?:ago|前)`)

// ParseUploadTime interprets an upload-time candidate: unix seconds or
// milliseconds, an absolute date in any common format, or a relative
// phrase ("3 hours ago", "2日前") resolved against now. Returns false
// when the string does not describe a plausible timestamp.
func ParseUploadTime(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(foldWidth(raw))
	if raw == "" {
		return time.Time{}, false
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		switch {
		case n >= 1e12: // milliseconds
			return time.UnixMilli(n).UTC(), true
		case n >= 1e9: // seconds, 2001 onwards
			return time.Unix(n, 0).UTC(), true
		}
		return time.Time{}, false
	}

	if m := relativeTimeRe.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		unit := 7 * 24 * time.Hour
		switch u := strings.ToLower(m[2]); {
		case strings.HasPrefix(u, "hour"), u == "時間":
			unit = time.Hour
		case strings.HasPrefix(u, "day"), u == "日":
			unit = 24 * time.Hour
		}
		return now.Add(-time.Duration(n) * unit).UTC(), true
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// uploadTimeOf wraps ParseUploadTime for strategy use, nil on failure.
func uploadTimeOf(raw string, now time.Time) *time.Time {
	if t, ok := ParseUploadTime(raw, now); ok {
		return &t
	}
	return nil
}
