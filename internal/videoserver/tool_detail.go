package videoserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tikradar/internal/extract"
)

// VideoDetailInput is the input for video_detail.
type VideoDetailInput struct {
	URL string `json:"url"`
}

// VideoDetailOutput is the output for video_detail.
type VideoDetailOutput struct {
	Video  *extract.Record `json:"video,omitempty"`
	Report extract.Report  `json:"report"`
}

func registerVideoDetail(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_detail",
		Description: "Fetch one TikTok video URL and extract its metadata without persisting it. Returns the record plus a per-strategy extraction report; video is omitted when the page yields nothing usable.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoDetailInput) (*mcp.CallToolResult, VideoDetailOutput, error) {
		if input.URL == "" {
			return nil, VideoDetailOutput{}, errors.New("url is required")
		}
		p, err := d.Fetcher.Fetch(ctx, input.URL)
		if err != nil {
			return nil, VideoDetailOutput{}, err
		}
		rec, rep := d.Engine.ExtractWithReport(p)
		return nil, VideoDetailOutput{Video: rec, Report: rep}, nil
	})
}
