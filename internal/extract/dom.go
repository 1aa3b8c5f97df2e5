package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Stable test-automation attributes the web app puts on its stat and
// author elements, plus legacy class names from older page builds.
// Earlier selectors for the same field win.
var (
	e2eCountSelectors = []struct {
		attr  string
		field string
	}{
		{"like-count", "like"},
		{"comment-count", "comment"},
		{"share-count", "share"},
		{"video-views", "view"},
		{"video-view-count", "view"},
	}

	e2eTextSelectors = []struct {
		selector string
		field    string
	}{
		{`[data-e2e="browse-username"]`, "username"},
		{`.author-uniqueId`, "username"},
		{`[data-e2e="browse-nickname"]`, "nickname"},
		{`.author-nickname`, "nickname"},
		{`[data-e2e="browse-video-desc"]`, "desc"},
		{`.video-meta-caption`, "desc"},
	}
)

// domAttributeFields reads statistics and author identity from elements
// carrying known data-e2e attributes or legacy class names.
func domAttributeFields(p *Payload) Fields {
	var f Fields
	doc := p.Doc()
	if doc == nil {
		return f
	}

	countDst := func(field string) **int64 {
		switch field {
		case "like":
			return &f.LikeCount
		case "comment":
			return &f.CommentCount
		case "share":
			return &f.ShareCount
		default:
			return &f.ViewCount
		}
	}
	for _, sel := range e2eCountSelectors {
		dst := countDst(sel.field)
		if *dst != nil {
			continue
		}
		doc.Find(`[data-e2e="` + sel.attr + `"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if n, ok := ParseCount(strings.TrimSpace(s.Text())); ok {
				*dst = &n
				return false
			}
			return true
		})
	}

	textDst := func(field string) *string {
		switch field {
		case "username":
			return &f.AuthorUsername
		case "nickname":
			return &f.AuthorDisplayName
		default:
			return &f.Description
		}
	}
	for _, sel := range e2eTextSelectors {
		dst := textDst(sel.field)
		if *dst != "" {
			continue
		}
		doc.Find(sel.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := strings.TrimSpace(s.Text())
			if t == "" {
				return true
			}
			if sel.field == "username" {
				t = strings.TrimPrefix(t, "@")
			}
			*dst = t
			return false
		})
	}
	return f
}
