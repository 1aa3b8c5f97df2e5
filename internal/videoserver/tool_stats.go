package videoserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tikradar/internal/pipeline"
)

// VideoStatsInput is the input for video_stats.
type VideoStatsInput struct{}

// VideoStatsOutput is the output for video_stats.
type VideoStatsOutput struct {
	StoredVideos int64            `json:"stored_videos"`
	Counters     map[string]int64 `json:"counters"`
}

func registerVideoStats(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_stats",
		Description: "Report operational counters for the discovery pipeline (fetches, errors, rate limits, extraction outcomes) and the number of videos in local storage.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ VideoStatsInput) (*mcp.CallToolResult, VideoStatsOutput, error) {
		n, err := d.Store.Count(ctx)
		if err != nil {
			return nil, VideoStatsOutput{}, err
		}
		return nil, VideoStatsOutput{
			StoredVideos: n,
			Counters:     pipeline.GetMetrics(),
		}, nil
	})
}
