package videoserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tikradar/internal/extract"
	"tikradar/internal/store"
)

// VideoQueryInput is the input for video_query.
type VideoQueryInput struct {
	MinViews  int64  `json:"min_views,omitempty"`
	Author    string `json:"author,omitempty"`
	SinceDays int    `json:"since_days,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// VideoQueryOutput is the output for video_query.
type VideoQueryOutput struct {
	Videos []extract.Record `json:"videos"`
	Total  int              `json:"total"`
}

func registerVideoQuery(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_query",
		Description: "Query previously discovered videos from local storage. Filters: minimum view count, author username, uploaded within the last N days. Returns videos sorted by view count, most viewed first.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoQueryInput) (*mcp.CallToolResult, VideoQueryOutput, error) {
		q := store.Query{
			MinViews: input.MinViews,
			Author:   input.Author,
			Limit:    input.Limit,
		}
		if input.SinceDays > 0 {
			q.Since = time.Now().UTC().AddDate(0, 0, -input.SinceDays)
		}
		videos, err := d.Store.Videos(ctx, q)
		if err != nil {
			return nil, VideoQueryOutput{}, err
		}
		if videos == nil {
			videos = []extract.Record{}
		}
		return nil, VideoQueryOutput{Videos: videos, Total: len(videos)}, nil
	})
}
