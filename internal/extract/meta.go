package extract

import "github.com/PuerkitoBio/goquery"

// metaTagFields reads the social-sharing meta tags. The Open Graph family
// is preferred; Twitter card tags only fill what og: left absent.
func metaTagFields(p *Payload) Fields {
	var f Fields
	doc := p.Doc()
	if doc == nil {
		return f
	}

	og := func(prop string) string { return metaContent(doc, `meta[property="og:` + prop + `"]`) }
	tw := func(name string) string { return metaContent(doc, `meta[name="twitter:` + name + `"]`) }

	f.Title = og("title")
	f.Description = og("description")
	f.ThumbnailURL = og("image")
	if n, ok := ParseCount(og("video:duration")); ok {
		f.Duration = &n
	}

	if f.Title == "" {
		f.Title = tw("title")
	}
	if f.Description == "" {
		f.Description = tw("description")
	}
	if f.ThumbnailURL == "" {
		f.ThumbnailURL = tw("image")
	}
	return f
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return content
}
