package extract

import (
	"encoding/json"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// The platform has shipped several embedded-state formats over time.
// Newer pages carry the blob in an application/json script tag; older ones
// assign it to a global inside inline script. All variants are tried in
// order and the first blob yielding any fields wins.
var stateScriptIDs = []string{
	"__UNIVERSAL_DATA_FOR_REHYDRATION__",
	"SIGI_STATE",
	"sigi-persisted-data",
}

var stateAssignRes = []*regexp.Regexp{
	regexp.MustCompile(`(?s)window\['SIGI_STATE'\]\s*=\s*(\{.+?\});`),
	regexp.MustCompile(`(?s)window\.SIGI_STATE\s*=\s*(\{.+?\});`),
	regexp.MustCompile(`(?s)\bSIGI_STATE\s*=\s*(\{.+?\});`),
	regexp.MustCompile(`(?s)window\['__UNIVERSAL_DATA_FOR_REHYDRATION__'\]\s*=\s*(\{.+?\});`),
	regexp.MustCompile(`(?s)__UNIVERSAL_DATA_FOR_REHYDRATION__\s*=\s*(\{.+?\});`),
	regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.+?\});`),
}

// Key-name variants across platform versions. The camelCase forms come
// from the web app state, snake_case from the mobile API payloads that
// sometimes leak into embedded JSON.
var (
	itemIDKeys    = []string{"id", "aweme_id", "video_id"}
	playCountKeys = []string{"playCount", "play_count", "viewCount", "view_count"}
	likeCountKeys = []string{"diggCount", "digg_count", "likeCount", "like_count"}
	commentKeys   = []string{"commentCount", "comment_count"}
	shareKeys     = []string{"shareCount", "share_count"}
	createKeys    = []string{"createTime", "create_time"}
	usernameKeys  = []string{"uniqueId", "unique_id"}
	followerKeys  = []string{"followerCount", "follower_count"}
)

// stateBlobFields locates the embedded global-state JSON and mines it for
// the video item and author profile. Highest-priority strategy: these are
// the platform's own internal model values.
func stateBlobFields(p *Payload) Fields {
	for _, raw := range stateBlobSources(p) {
		data, ok := decodeJSON(raw)
		if !ok {
			continue
		}
		f := fieldsFromStateTree(data, p)
		if f != (Fields{}) {
			return f
		}
	}
	return Fields{}
}

// stateBlobSources collects candidate JSON texts: script tags by id first
// (exact JSON), then inline assignment patterns over the raw body.
func stateBlobSources(p *Payload) []string {
	var out []string
	if doc := p.Doc(); doc != nil {
		for _, id := range stateScriptIDs {
			doc.Find("script#" + id).Each(func(_ int, s *goquery.Selection) {
				if t := s.Text(); t != "" {
					out = append(out, t)
				}
			})
		}
	}
	for _, re := range stateAssignRes {
		if m := re.FindStringSubmatch(p.Body); len(m) > 1 {
			out = append(out, m[1])
		}
	}
	return out
}

// fieldsFromStateTree searches the decoded tree for the first item-like
// object (desc/stats/author) and the first user-profile object, without
// assuming a fixed nesting depth.
func fieldsFromStateTree(data any, p *Payload) Fields {
	var f Fields

	walkObjects(data, func(m map[string]any) bool {
		if !isVideoItem(m) {
			return false
		}
		itemFields(&f, m, p)
		return true
	})

	walkObjects(data, func(m map[string]any) bool {
		if !isUserProfile(m) {
			return false
		}
		userFields(&f, m)
		return true
	})

	return f
}

// isVideoItem reports whether an object looks like the ItemModule entry
// for a video: a stats sub-object, or a description plus author.
func isVideoItem(m map[string]any) bool {
	if _, ok := m["stats"].(map[string]any); ok {
		return true
	}
	_, hasDesc := m["desc"]
	_, hasAuthor := m["author"].(map[string]any)
	return hasDesc && hasAuthor
}

// isUserProfile reports whether an object looks like the UserModule entry
// for an author: a handle plus follower statistics.
func isUserProfile(m map[string]any) bool {
	if _, ok := firstKey(m, usernameKeys...); !ok {
		return false
	}
	_, ok := firstKey(m, followerKeys...)
	return ok
}

func itemFields(f *Fields, m map[string]any, p *Payload) {
	if v, ok := firstKey(m, itemIDKeys...); ok {
		switch t := v.(type) {
		case string:
			f.VideoID = t
		case json.Number:
			f.VideoID = t.String()
		}
	}
	// The item's desc doubles as the caption shown as the title.
	if s, ok := asString(m["desc"]); ok {
		f.Title = s
		f.Description = s
	}
	if v, ok := firstKey(m, createKeys...); ok {
		switch t := v.(type) {
		case json.Number:
			f.UploadTime = uploadTimeOf(t.String(), p.FetchedAt)
		case string:
			f.UploadTime = uploadTimeOf(t, p.FetchedAt)
		}
	}

	if stats, ok := m["stats"].(map[string]any); ok {
		fillCount := func(dst **int64, keys []string) {
			if v, ok := firstKey(stats, keys...); ok {
				if n, ok := asCount(v); ok {
					*dst = &n
				}
			}
		}
		fillCount(&f.ViewCount, playCountKeys)
		fillCount(&f.LikeCount, likeCountKeys)
		fillCount(&f.CommentCount, commentKeys)
		fillCount(&f.ShareCount, shareKeys)
	}

	if author, ok := m["author"].(map[string]any); ok {
		if v, ok := firstKey(author, usernameKeys...); ok {
			if s, ok := asString(v); ok {
				f.AuthorUsername = s
			}
		}
		if s, ok := asString(author["nickname"]); ok {
			f.AuthorDisplayName = s
		}
		if b, ok := author["verified"].(bool); ok {
			f.AuthorVerified = &b
		}
	}

	if video, ok := m["video"].(map[string]any); ok {
		if n, ok := asCount(video["duration"]); ok {
			f.Duration = &n
		}
		if s, ok := asString(video["cover"]); ok {
			f.ThumbnailURL = s
		}
	}
}

func userFields(f *Fields, m map[string]any) {
	if f.AuthorUsername == "" {
		if v, ok := firstKey(m, usernameKeys...); ok {
			if s, ok := asString(v); ok {
				f.AuthorUsername = s
			}
		}
	}
	if f.AuthorDisplayName == "" {
		if s, ok := asString(m["nickname"]); ok {
			f.AuthorDisplayName = s
		}
	}
	if f.AuthorVerified == nil {
		if b, ok := m["verified"].(bool); ok {
			f.AuthorVerified = &b
		}
	}
	if v, ok := firstKey(m, followerKeys...); ok {
		if n, ok := asCount(v); ok {
			f.AuthorFollowerCount = &n
		}
	}
}
