// tikradar — TikTok video discovery MCP server.
//
// Exposes four MCP tools: video_discover, video_detail, video_query,
// video_stats. Runs as HTTP MCP server or stdio transport.
//
// Pages are fetched through a rendering proxy when SCRAPERAPI_KEY is set,
// otherwise directly with a browser-fingerprinted client.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tikradar/internal/extract"
	"tikradar/internal/fetch"
	"tikradar/internal/pipeline"
	"tikradar/internal/store"
	"tikradar/internal/videoserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	slog.Info("starting tikradar",
		slog.String("port", mcpPort),
	)

	st, err := store.Open(env.Str("DB_PATH", defaultDBPath()))
	if err != nil {
		slog.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer st.Close()

	client := newFetchClient()
	engine := extract.NewEngine()
	runner := &pipeline.Runner{Fetcher: client, Engine: engine, Store: st}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tikradar",
		Version: version,
	}, nil)

	videoserver.RegisterTools(server, videoserver.Deps{
		Runner:  runner,
		Fetcher: client,
		Engine:  engine,
		Store:   st,
	})
	slog.Info("tools registered", slog.Int("count", 4))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "tikradar",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      pipeline.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func newFetchClient() *fetch.Client {
	cfg := fetch.Config{
		APIKey:          env.Str("SCRAPERAPI_KEY", ""),
		BaseURL:         env.Str("SCRAPERAPI_URL", ""),
		RenderJS:        env.Str("SCRAPERAPI_RENDER", "true") == "true",
		CountryCode:     env.Str("SCRAPERAPI_COUNTRY", ""),
		Premium:         env.Str("SCRAPERAPI_PREMIUM", "") == "true",
		SessionNumber:   env.Int("SCRAPERAPI_SESSION", 0),
		RequestInterval: env.Duration("REQUEST_INTERVAL", 2*time.Second),
		Timeout:         env.Duration("FETCH_TIMEOUT", 30*time.Second),
		MaxTries:        env.Int("FETCH_MAX_TRIES", 3),
	}

	if cfg.APIKey == "" {
		var opts []stealth.ClientOption
		opts = append(opts, stealth.WithTimeout(15))

		if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
			pool, err := proxypool.NewWebshare(apiKey)
			if err != nil {
				slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
			} else {
				opts = append(opts, stealth.WithProxyPool(pool))
				slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
			}
		}

		bc, err := stealth.NewClient(opts...)
		if err != nil {
			slog.Warn("stealth client init failed, using plain http", slog.Any("error", err))
		} else {
			cfg.Browser = bc
			slog.Info("stealth browser client initialized")
		}
	}

	return fetch.NewClient(cfg)
}

func defaultDBPath() string {
	return filepath.Join(os.Getenv("HOME"), ".tikradar", "videos.db")
}
