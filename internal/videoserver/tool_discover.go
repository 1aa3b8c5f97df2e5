package videoserver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tikradar/internal/filter"
	"tikradar/internal/pipeline"
)

// VideoDiscoverInput is the input for video_discover. Either full video
// URLs, or a username plus video ids to build canonical URLs from.
type VideoDiscoverInput struct {
	URLs        []string `json:"urls,omitempty"`
	Username    string   `json:"username,omitempty"`
	VideoIDs    []string `json:"video_ids,omitempty"`
	MinViews    int64    `json:"min_views,omitempty"`
	MaxAgeHours int      `json:"max_age_hours,omitempty"`
}

func (in VideoDiscoverInput) videoURLs() []string {
	urls := in.URLs
	if in.Username != "" {
		user := strings.TrimPrefix(in.Username, "@")
		for _, id := range in.VideoIDs {
			urls = append(urls, "https://www.tiktok.com/@" + user + "/video/" + id)
		}
	}
	return urls
}

func registerVideoDiscover(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_discover",
		Description: "Fetch the given TikTok video URLs, extract metadata (views, likes, comments, shares, author, upload time), filter by minimum views and maximum age, and persist the keepers. Returns a run summary with per-stage counts and any URLs that failed to fetch.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoDiscoverInput) (*mcp.CallToolResult, pipeline.Result, error) {
		urls := input.videoURLs()
		if len(urls) == 0 {
			return nil, pipeline.Result{}, errors.New("urls or username with video_ids is required")
		}
		th := filter.Thresholds{
			MinViews: input.MinViews,
			MaxAge:   time.Duration(input.MaxAgeHours) * time.Hour,
		}
		res, err := d.Runner.Run(ctx, urls, th)
		if err != nil {
			return nil, pipeline.Result{}, err
		}
		return nil, res, nil
	})
}
