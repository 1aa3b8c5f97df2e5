// Package extract turns a raw TikTok video page into a structured
// metadata record. Pages vary enormously in what they expose, so the
// engine runs a fixed, ordered battery of extraction strategies, from
// the platform's embedded state JSON down to raw-text regex fragments,
// and merges their candidates with a strict fill-if-absent rule: the
// highest-priority strategy to resolve a field keeps it.
//
// The engine is synchronous and side-effect free. It performs no I/O,
// never raises for data-quality problems, and is safe to call
// concurrently on independent payloads.
package extract

// A strategy attempts to locate a subset of fields from one part of the
// payload. Strategies never fail outward: anything unparseable simply
// yields no candidates.
type strategy struct {
	name string
	run  func(p *Payload) Fields
}

// Engine runs the strategy battery in trust order, highest first.
type Engine struct {
	strategies []strategy
}

// NewEngine returns an engine with the full strategy battery.
func NewEngine() *Engine {
	return &Engine{strategies: []strategy{
		{"state_blob", stateBlobFields},
		{"json_ld", jsonLDFields},
		{"meta_tags", metaTagFields},
		{"share_description", shareDescriptionFields},
		{"visible_text", visibleTextFields},
		{"dom_attributes", domAttributeFields},
		{"raw_regex", rawRegexFields},
	}}
}

// Report describes one extraction for callers that aggregate outcomes.
type Report struct {
	VideoID    string         `json:"video_id,omitempty"`
	Resolved   int            `json:"resolved"`
	ByStrategy map[string]int `json:"by_strategy,omitempty"`
	Usable     bool           `json:"usable"`
}

// Extract produces the merged record for one payload, or nil when no
// usable record can be formed. Nil is an expected outcome, not an error:
// a record requires a video identifier plus at least one of engagement
// count, author identity, or title.
func (e *Engine) Extract(p *Payload) *Record {
	rec, _ := e.ExtractWithReport(p)
	return rec
}

// ExtractWithReport is Extract plus a per-strategy contribution report.
func (e *Engine) ExtractWithReport(p *Payload) (*Record, Report) {
	rep := Report{ByStrategy: make(map[string]int, len(e.strategies))}

	rec := &Record{
		URL:         p.URL,
		VideoID:     VideoIDFromURL(p.URL),
		ExtractedAt: p.FetchedAt,
	}
	for _, s := range e.strategies {
		if n := rec.fill(s.run(p)); n > 0 {
			rep.ByStrategy[s.name] = n
			rep.Resolved += n
		}
	}

	if rec.VideoID == "" || !rec.useful() {
		return nil, rep
	}
	rep.VideoID = rec.VideoID
	rep.Usable = true
	return rec, rep
}
