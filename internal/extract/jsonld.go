package extract

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// jsonLDFields scans the embedded schema.org blocks for a VideoObject and
// pulls title, description, upload date, duration, and the typed
// interaction counts. Counts are matched by interaction type, never by
// position in the list.
func jsonLDFields(p *Payload) Fields {
	var f Fields
	doc := p.Doc()
	if doc == nil {
		return f
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		data, ok := decodeJSON(s.Text())
		if !ok {
			return true
		}
		switch t := data.(type) {
		case map[string]any:
			if videoObjectFields(&f, t, p) {
				return false
			}
		case []any:
			for _, item := range t {
				if m, ok := item.(map[string]any); ok && videoObjectFields(&f, m, p) {
					return false
				}
			}
		}
		return true
	})
	return f
}

// videoObjectFields fills f from a schema.org object, returning true when
// the object was a VideoObject.
func videoObjectFields(f *Fields, m map[string]any, p *Payload) bool {
	if t, _ := asString(m["@type"]); t != "VideoObject" {
		return false
	}
	if s, ok := asString(m["name"]); ok {
		f.Title = s
	}
	if s, ok := asString(m["description"]); ok {
		f.Description = s
	}
	if s, ok := asString(m["uploadDate"]); ok {
		f.UploadTime = uploadTimeOf(s, p.FetchedAt)
	}
	switch v := m["thumbnailUrl"].(type) {
	case string:
		f.ThumbnailURL = v
	case []any:
		if len(v) > 0 {
			if s, ok := asString(v[0]); ok {
				f.ThumbnailURL = s
			}
		}
	}
	if d, ok := durationSeconds(m["duration"]); ok {
		f.Duration = &d
	}

	stats, _ := m["interactionStatistic"].([]any)
	for _, raw := range stats {
		stat, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		count, ok := asCount(stat["userInteractionCount"])
		if !ok {
			continue
		}
		switch interactionType(stat["interactionType"]) {
		case "LikeAction":
			f.LikeCount = &count
		case "CommentAction":
			f.CommentCount = &count
		case "ShareAction":
			f.ShareCount = &count
		case "WatchAction":
			f.ViewCount = &count
		}
	}
	return true
}

// interactionType handles both encodings schema.org allows: a nested
// {"@type": "LikeAction"} object or a bare type string.
func interactionType(v any) string {
	switch t := v.(type) {
	case map[string]any:
		s, _ := asString(t["@type"])
		return trimActionNamespace(s)
	case string:
		return trimActionNamespace(t)
	}
	return ""
}

var actionNamespaceRe = regexp.MustCompile(`^https?://schema\.org/`)

func trimActionNamespace(s string) string {
	return actionNamespaceRe.ReplaceAllString(s, "")
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:\.\d+)?S)?$`)

// durationSeconds accepts a plain seconds value or an ISO-8601 duration
// ("PT15S", "PT1M30S").
func durationSeconds(v any) (int64, bool) {
	if n, ok := asCount(v); ok {
		return n, true
	}
	s, ok := asString(v)
	if !ok {
		return 0, false
	}
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	var total int64
	for i, mult := range []int64{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, false
		}
		total += n * mult
	}
	if m[1] == "" && m[2] == "" && m[3] == "" {
		return 0, false
	}
	return total, true
}
