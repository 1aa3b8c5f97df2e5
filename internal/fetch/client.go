// Package fetch retrieves TikTok video pages, either through a rendering
// proxy API or directly with a browser-impersonating client. It owns
// pacing and retries; callers get a ready extraction payload or a
// classified error.
package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/cenkalti/backoff/v5"
	"github.com/corpix/uarand"
	"golang.org/x/time/rate"

	"tikradar/internal/extract"
)

// Config controls one Client. Zero values get sensible defaults from
// NewClient.
type Config struct {
	// APIKey enables the rendering proxy. Empty means direct fetching.
	APIKey  string
	BaseURL string

	// Proxy rendering options, passed through as query parameters.
	RenderJS      bool
	CountryCode   string
	Premium       bool
	SessionNumber int

	// RequestInterval is the minimum spacing between outgoing fetches.
	RequestInterval time.Duration

	Timeout   time.Duration
	MaxTries  int
	RetryWait time.Duration

	// Browser is the direct-fetch fallback with a real TLS fingerprint.
	// Optional; without it direct fetches use a plain HTTP client.
	Browser *stealth.BrowserClient
}

const defaultBaseURL = "https://api.scraperapi.com/"

// Client fetches video pages. Safe for concurrent use; the rate limiter
// paces all callers together.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a Client, filling config defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTries <= 0 {
		cfg.MaxTries = 3
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = time.Second
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 15 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
	}
}

// Fetch retrieves one video page and wraps it for extraction. Blocks on
// the shared rate limiter before touching the network.
func (c *Client) Fetch(ctx context.Context, videoURL string) (*extract.Payload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var (
		body []byte
		err  error
	)
	if c.cfg.APIKey != "" {
		body, err = c.fetchProxy(ctx, videoURL)
	} else {
		body, err = c.fetchDirect(ctx, videoURL)
	}
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	return extract.NewPayload(videoURL, string(body)), nil
}

// proxyURL builds the rendering-proxy request for a target page.
func (c *Client) proxyURL(videoURL string) string {
	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	q.Set("url", videoURL)
	if c.cfg.RenderJS {
		q.Set("render_js", "true")
	}
	if c.cfg.CountryCode != "" {
		q.Set("country_code", c.cfg.CountryCode)
	}
	if c.cfg.Premium {
		q.Set("premium", "true")
	}
	if c.cfg.SessionNumber > 0 {
		q.Set("session_number", strconv.Itoa(c.cfg.SessionNumber))
	}
	return c.cfg.BaseURL + "?" + q.Encode()
}

func (c *Client) fetchProxy(ctx context.Context, videoURL string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.proxyURL(videoURL), nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", uarand.GetRandom())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if err := classifyStatus(resp.StatusCode); err != nil {
			return nil, err
		}
		return readResponseBody(resp)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.RetryWait
	bo.MaxInterval = 10 * c.cfg.RetryWait

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.cfg.MaxTries)))
}

func (c *Client) fetchDirect(ctx context.Context, videoURL string) ([]byte, error) {
	if c.cfg.Browser != nil {
		return c.fetchBrowser(ctx, videoURL)
	}

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		for k, v := range stealth.ChromeHeaders() {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if err := classifyStatus(resp.StatusCode); err != nil {
			return nil, err
		}
		return readResponseBody(resp)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.RetryWait
	bo.MaxInterval = 10 * c.cfg.RetryWait

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.cfg.MaxTries)))
}

// fetchBrowser goes through the TLS-fingerprinted client, with the same
// retry and status classification as the plain path.
func (c *Client) fetchBrowser(ctx context.Context, videoURL string) ([]byte, error) {
	operation := func() ([]byte, error) {
		body, _, status, err := c.cfg.Browser.Do(http.MethodGet, videoURL, stealth.ChromeHeaders(), nil)
		if err != nil {
			return nil, err
		}
		if err := classifyStatus(status); err != nil {
			return nil, err
		}
		return body, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.RetryWait
	bo.MaxInterval = 10 * c.cfg.RetryWait

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.cfg.MaxTries)))
}

// classifyStatus maps an HTTP status to nil, a permanent sentinel, or a
// retryable error.
func classifyStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return backoff.Permanent(ErrAuth)
	case code == http.StatusNotFound:
		return backoff.Permanent(ErrNotFound)
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case stealth.IsRetryableStatus(code):
		return fmt.Errorf("status %d", code)
	default:
		return backoff.Permanent(fmt.Errorf("status %d", code))
	}
}

// readResponseBody reads the body, decompressing gzip when the proxy does
// not strip the encoding header.
func readResponseBody(resp *http.Response) ([]byte, error) {
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	}
	return io.ReadAll(resp.Body)
}
