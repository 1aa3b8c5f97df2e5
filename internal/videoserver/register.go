// Package videoserver exposes the discovery pipeline over MCP:
// video_discover, video_detail, video_query, video_stats.
package videoserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tikradar/internal/extract"
	"tikradar/internal/pipeline"
	"tikradar/internal/store"
)

// Deps are the shared collaborators behind every tool.
type Deps struct {
	Runner  *pipeline.Runner
	Fetcher pipeline.Fetcher
	Engine  *extract.Engine
	Store   *store.Store
}

// RegisterTools registers all video tools on the given MCP server.
func RegisterTools(server *mcp.Server, d Deps) {
	registerVideoDiscover(server, d)
	registerVideoDetail(server, d)
	registerVideoQuery(server, d)
	registerVideoStats(server, d)
}
