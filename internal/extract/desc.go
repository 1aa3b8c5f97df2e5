package extract

import (
	"regexp"
	"strings"
)

// The sharing-description meta tag packs author and counts into prose,
// with phrasing that differs by page locale. Patterns are ordered per
// field; the first one whose capture normalizes successfully wins.
// English and Japanese phrasings are the two the platform serves here.
const num = `(\d[\d.,]*[KMB万億]?)`

var (
	descLikeRes = compileAll(
		`いいねの数[：:]\s*` + num,
		`(?i)` + num + `\s*(?:likes?|いいね)`,
		`♥\s*` + num,
		`(?i)likes?[：:]\s*` + num,
	)
	descCommentRes = compileAll(
		`コメントの数[：:]\s*` + num,
		`(?i)` + num + `\s*(?:comments?|コメント)`,
		`(?i)comments?[：:]\s*` + num,
	)
	descViewRes = compileAll(
		`再生回数[：:]\s*` + num,
		num + `\s*回再生`,
		`(?i)` + num + `\s*(?:views?|再生)`,
		`(?i)views?[：:]\s*` + num,
	)
	descShareRes = compileAll(
		`シェア[：:]\s*` + num,
		`共有[：:]\s*` + num,
		`(?i)` + num + `\s*(?:shares?|シェア)`,
	)

	// "Display Name (@handle)" before a bare "@handle": the handle goes to
	// the identity field, never the display name.
	descAuthorCompoundRe = regexp.MustCompile(`([^(@\n,.、。!?]+?)\s*\(@([A-Za-z0-9_.\-]+)\)`)
	descAuthorBareRe     = regexp.MustCompile(`@([A-Za-z0-9_.]+)`)

	descTitleRes = compileAll(
		`動画[：:]「([^」]+)」`,
		`TikTok[^：:」]*[：:]「([^」]+)」`,
	)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// shareDescriptionFields mines the sharing-description text for counts and
// the author identity.
func shareDescriptionFields(p *Payload) Fields {
	var f Fields
	for _, desc := range shareDescriptions(p) {
		fillFromDescription(&f, desc)
	}
	return f
}

// shareDescriptions returns candidate description texts, most specific
// source first.
func shareDescriptions(p *Payload) []string {
	doc := p.Doc()
	if doc == nil {
		return nil
	}
	var out []string
	for _, sel := range []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
	} {
		if c := metaContent(doc, sel); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// fillFromDescription sets only fields still absent, so the first
// description source to resolve a field keeps it.
func fillFromDescription(f *Fields, desc string) {
	desc = foldWidth(desc)

	if f.LikeCount == nil {
		f.LikeCount = firstCount(desc, descLikeRes)
	}
	if f.CommentCount == nil {
		f.CommentCount = firstCount(desc, descCommentRes)
	}
	if f.ViewCount == nil {
		f.ViewCount = firstCount(desc, descViewRes)
	}
	if f.ShareCount == nil {
		f.ShareCount = firstCount(desc, descShareRes)
	}

	if f.AuthorUsername == "" {
		if m := descAuthorCompoundRe.FindStringSubmatch(desc); m != nil {
			f.AuthorDisplayName = strings.TrimSpace(m[1])
			f.AuthorUsername = m[2]
		} else if m := descAuthorBareRe.FindStringSubmatch(desc); m != nil {
			f.AuthorUsername = m[1]
		}
	}

	if f.Title == "" {
		for _, re := range descTitleRes {
			if m := re.FindStringSubmatch(desc); m != nil {
				f.Title = strings.TrimSpace(m[1])
				break
			}
		}
	}
}

// firstCount returns the first pattern capture that normalizes to a valid
// count. Malformed captures are skipped, not zeroed.
func firstCount(text string, res []*regexp.Regexp) *int64 {
	for _, re := range res {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, ok := ParseCount(m[1]); ok {
			return &n
		}
	}
	return nil
}
