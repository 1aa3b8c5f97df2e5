package fetch

import "errors"

// Sentinel failures callers branch on. Everything else surfaces as a
// wrapped transport or status error.
var (
	// ErrAuth means the proxy API rejected our credentials. Permanent:
	// retrying burns quota without ever succeeding.
	ErrAuth = errors.New("fetch: proxy credentials rejected")

	// ErrNotFound means the video page no longer exists.
	ErrNotFound = errors.New("fetch: video not found")

	// ErrRateLimited means the upstream throttled us and retries within
	// the attempt budget did not clear it.
	ErrRateLimited = errors.New("fetch: rate limited")

	// ErrEmptyBody means the fetch succeeded at the HTTP level but
	// returned nothing worth extracting.
	ErrEmptyBody = errors.New("fetch: empty response body")
)
