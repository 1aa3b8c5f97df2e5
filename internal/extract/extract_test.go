package extract

import (
	"reflect"
	"testing"
	"time"
)

var testFetchedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testPayload(url, body string) *Payload {
	return &Payload{URL: url, Body: body, FetchedAt: testFetchedAt}
}

const sigiPage = `<html><head>
<script id="SIGI_STATE" type="application/json">
{"ItemModule":{"7340000000000000001":{"id":"7340000000000000001","desc":"morning routine","createTime":"1700000000",
"stats":{"playCount":150000,"diggCount":2500000,"commentCount":0,"shareCount":340},
"author":{"uniqueId":"someone","nickname":"Some One"},
"video":{"duration":47,"cover":"https://p16.example.com/cover.jpg"}}},
"UserModule":{"users":{"someone":{"uniqueId":"someone","nickname":"Some One","verified":true,"followerCount":88000}}}}
</script>
</head><body></body></html>`

func TestExtractStateBlob(t *testing.T) {
	p := testPayload("https://www.tiktok.com/@someone/video/7340000000000000001", sigiPage)
	rec := NewEngine().Extract(p)
	if rec == nil {
		t.Fatal("Extract returned nil, want record")
	}

	if rec.VideoID != "7340000000000000001" {
		t.Errorf("VideoID = %q", rec.VideoID)
	}
	if rec.Title != "morning routine" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.AuthorUsername != "someone" || rec.AuthorDisplayName != "Some One" {
		t.Errorf("author = %q / %q", rec.AuthorUsername, rec.AuthorDisplayName)
	}
	if rec.AuthorVerified == nil || !*rec.AuthorVerified {
		t.Error("AuthorVerified not resolved")
	}
	if rec.AuthorFollowerCount == nil || *rec.AuthorFollowerCount != 88000 {
		t.Errorf("AuthorFollowerCount = %v", rec.AuthorFollowerCount)
	}
	if rec.ViewCount == nil || *rec.ViewCount != 150000 {
		t.Errorf("ViewCount = %v", rec.ViewCount)
	}
	if rec.LikeCount == nil || *rec.LikeCount != 2500000 {
		t.Errorf("LikeCount = %v", rec.LikeCount)
	}
	if rec.ShareCount == nil || *rec.ShareCount != 340 {
		t.Errorf("ShareCount = %v", rec.ShareCount)
	}
	if rec.Duration == nil || *rec.Duration != 47 {
		t.Errorf("Duration = %v", rec.Duration)
	}
	if rec.ThumbnailURL != "https://p16.example.com/cover.jpg" {
		t.Errorf("ThumbnailURL = %q", rec.ThumbnailURL)
	}
	if rec.UploadTime == nil || !rec.UploadTime.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Errorf("UploadTime = %v", rec.UploadTime)
	}
	if !rec.ExtractedAt.Equal(testFetchedAt) {
		t.Errorf("ExtractedAt = %v, want fetch time", rec.ExtractedAt)
	}

	// A present zero must survive as zero, not be dropped as absent.
	if rec.CommentCount == nil {
		t.Fatal("CommentCount absent, want explicit 0")
	}
	if *rec.CommentCount != 0 {
		t.Errorf("CommentCount = %d, want 0", *rec.CommentCount)
	}
}

func TestExtractPriorityOrder(t *testing.T) {
	// JSON-LD reports 1000 views; a raw script fragment claims 999999.
	// The higher-trust strategy resolves the field first and keeps it.
	body := `<html><head>
<script type="application/ld+json">
{"@type":"VideoObject","name":"clip",
"interactionStatistic":[{"@type":"InteractionCounter","interactionType":{"@type":"WatchAction"},"userInteractionCount":1000}]}
</script>
<script>var s = {"viewCount": 999999};</script>
</head><body></body></html>`
	rec := NewEngine().Extract(testPayload("https://www.tiktok.com/@a/video/42", body))
	if rec == nil {
		t.Fatal("Extract returned nil")
	}
	if rec.ViewCount == nil || *rec.ViewCount != 1000 {
		t.Errorf("ViewCount = %v, want 1000 from higher-trust source", rec.ViewCount)
	}
}

func TestExtractMergeAcrossStrategies(t *testing.T) {
	// Views come from a data attribute, the author from the share
	// description; the merged record carries both.
	body := `<html><head>
<meta name="description" content="Jane Doe (@janedoe97) on TikTok. 1.5K いいね, 42 コメント">
</head><body>
<strong data-e2e="video-views">12.3K</strong>
</body></html>`
	rec := NewEngine().Extract(testPayload("https://www.tiktok.com/@janedoe97/video/99", body))
	if rec == nil {
		t.Fatal("Extract returned nil")
	}
	if rec.AuthorUsername != "janedoe97" {
		t.Errorf("AuthorUsername = %q", rec.AuthorUsername)
	}
	if rec.AuthorDisplayName != "Jane Doe" {
		t.Errorf("AuthorDisplayName = %q", rec.AuthorDisplayName)
	}
	if rec.ViewCount == nil || *rec.ViewCount != 12300 {
		t.Errorf("ViewCount = %v", rec.ViewCount)
	}
	if rec.LikeCount == nil || *rec.LikeCount != 1500 {
		t.Errorf("LikeCount = %v", rec.LikeCount)
	}
	if rec.CommentCount == nil || *rec.CommentCount != 42 {
		t.Errorf("CommentCount = %v, want 42 from コメント phrasing", rec.CommentCount)
	}
}

func TestExtractNotUseful(t *testing.T) {
	// The id is derivable from the URL, but the page yields no
	// engagement count, author, or title, so no record is formed.
	body := `<html><body><p>This content is unavailable.</p></body></html>`
	p := testPayload("https://www.tiktok.com/@gone/video/123456", body)

	rec, rep := NewEngine().ExtractWithReport(p)
	if rec != nil {
		t.Fatalf("Extract = %+v, want nil", rec)
	}
	if rep.Usable {
		t.Error("report marked usable")
	}
}

func TestExtractNoVideoID(t *testing.T) {
	body := `<html><head><meta property="og:title" content="some clip"></head></html>`
	if rec := NewEngine().Extract(testPayload("https://www.tiktok.com/explore", body)); rec != nil {
		t.Fatalf("Extract = %+v, want nil without a video id", rec)
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := NewEngine()
	first := e.Extract(testPayload("https://www.tiktok.com/@someone/video/7340000000000000001", sigiPage))
	for i := 0; i < 5; i++ {
		again := e.Extract(testPayload("https://www.tiktok.com/@someone/video/7340000000000000001", sigiPage))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, first, again)
		}
	}
}

func TestExtractReportContributions(t *testing.T) {
	p := testPayload("https://www.tiktok.com/@someone/video/7340000000000000001", sigiPage)
	rec, rep := NewEngine().ExtractWithReport(p)
	if rec == nil || !rep.Usable {
		t.Fatal("want usable record")
	}
	if rep.VideoID != rec.VideoID {
		t.Errorf("report VideoID = %q", rep.VideoID)
	}
	if rep.ByStrategy["state_blob"] == 0 {
		t.Errorf("state_blob contributed nothing: %v", rep.ByStrategy)
	}
	if rep.Resolved < rep.ByStrategy["state_blob"] {
		t.Errorf("Resolved = %d below single strategy", rep.Resolved)
	}
}

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.tiktok.com/@user/video/7340000000000000001", "7340000000000000001"},
		{"https://www.tiktok.com/@user/photo/123", "123"},
		{"https://m.tiktok.com/v/99887766.html", "99887766"},
		{"https://www.tiktok.com/@user", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := VideoIDFromURL(tt.url); got != tt.want {
			t.Errorf("VideoIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
