package extract

import (
	"regexp"
	"strings"
	"sync"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Payload is the raw page content for one video, read-only for every
// strategy. The tag tree and rendered text are parsed lazily and cached;
// a Payload must not be shared across concurrent Extract calls before
// construction completes, but extraction itself never mutates it.
type Payload struct {
	URL       string
	Body      string
	FetchedAt time.Time

	docOnce sync.Once
	doc     *goquery.Document

	textOnce sync.Once
	text     string
}

// NewPayload wraps a fetched page body for extraction.
func NewPayload(url, body string) *Payload {
	return &Payload{URL: url, Body: body, FetchedAt: time.Now().UTC()}
}

// Doc returns the parsed tag tree, or nil if the body is not parseable
// as HTML. Strategies treat nil as "no candidates".
func (p *Payload) Doc() *goquery.Document {
	p.docOnce.Do(func() {
		root, err := html.Parse(strings.NewReader(p.Body))
		if err != nil {
			return
		}
		p.doc = goquery.NewDocumentFromNode(root)
	})
	return p.doc
}

// Text returns the rendered text of the document with markup stripped,
// for pattern matching over visible content.
func (p *Payload) Text() string {
	p.textOnce.Do(func() {
		md, err := htmltomarkdown.ConvertString(p.Body)
		if err == nil {
			p.text = md
			return
		}
		if doc := p.Doc(); doc != nil {
			p.text = doc.Text()
		}
	})
	return p.text
}

var videoIDRe = regexp.MustCompile(`/(?:video|photo|v)/(\d+)`)

// VideoIDFromURL pulls the numeric video identifier out of a TikTok video
// URL path. Returns "" when the URL carries no identifier.
func VideoIDFromURL(rawURL string) string {
	if m := videoIDRe.FindStringSubmatch(rawURL); len(m) > 1 {
		return m[1]
	}
	return ""
}
