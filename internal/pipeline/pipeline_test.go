package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tikradar/internal/extract"
	"tikradar/internal/fetch"
	"tikradar/internal/filter"
)

type stubFetcher struct {
	pages map[string]string
	errs  map[string]error
}

func (s *stubFetcher) Fetch(_ context.Context, u string) (*extract.Payload, error) {
	if err, ok := s.errs[u]; ok {
		return nil, err
	}
	return &extract.Payload{URL: u, Body: s.pages[u], FetchedAt: time.Now().UTC()}, nil
}

type memStore struct {
	recs map[string]*extract.Record
	fail bool
}

func (m *memStore) Upsert(_ context.Context, rec *extract.Record) error {
	if m.fail {
		return errors.New("disk full")
	}
	if m.recs == nil {
		m.recs = make(map[string]*extract.Record)
	}
	m.recs[rec.VideoID] = rec
	return nil
}

func page(views string) string {
	return `<html><head>
<meta property="og:title" content="a clip">
</head><body><strong data-e2e="video-views">` + views + `</strong></body></html>`
}

func TestRun(t *testing.T) {
	f := &stubFetcher{
		pages: map[string]string{
			"https://www.tiktok.com/@u/video/1": page("5000"),
			"https://www.tiktok.com/@u/video/2": page("10"),
			"https://www.tiktok.com/@u/video/4": "<html><body>gone</body></html>",
		},
		errs: map[string]error{
			"https://www.tiktok.com/@u/video/3": fetch.ErrNotFound,
		},
	}
	ms := &memStore{}
	r := &Runner{Fetcher: f, Engine: extract.NewEngine(), Store: ms}

	res, err := r.Run(context.Background(),
		[]string{
			"https://www.tiktok.com/@u/video/1",
			"https://www.tiktok.com/@u/video/2",
			"https://www.tiktok.com/@u/video/3",
			"https://www.tiktok.com/@u/video/4",
		},
		filter.Thresholds{MinViews: 1000})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Requested)
	assert.Equal(t, 3, res.Fetched)
	assert.Equal(t, 2, res.Usable, "the empty page yields no record")
	assert.Equal(t, 1, res.Kept, "low-view record filtered out")
	assert.Equal(t, 1, res.Stored)
	assert.Equal(t, []string{"https://www.tiktok.com/@u/video/3"}, res.Failed)

	require.Contains(t, ms.recs, "1")
	require.NotNil(t, ms.recs["1"].ViewCount)
	assert.Equal(t, int64(5000), *ms.recs["1"].ViewCount)
	assert.NotContains(t, ms.recs, "2")
}

func TestRunStoreErrorsAreCounted(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{"https://www.tiktok.com/@u/video/1": page("5000")}}
	r := &Runner{Fetcher: f, Engine: extract.NewEngine(), Store: &memStore{fail: true}}

	res, err := r.Run(context.Background(),
		[]string{"https://www.tiktok.com/@u/video/1"}, filter.Thresholds{})
	require.NoError(t, err, "store failures are per-record, not fatal")
	assert.Equal(t, 1, res.Kept)
	assert.Equal(t, 0, res.Stored)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Fetcher: &stubFetcher{}, Engine: extract.NewEngine(), Store: &memStore{}}
	_, err := r.Run(ctx, []string{"https://www.tiktok.com/@u/video/1"}, filter.Thresholds{})
	require.ErrorIs(t, err, context.Canceled)
}
