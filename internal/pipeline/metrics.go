package pipeline

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across discovery runs.
var metrics struct {
	FetchRequests   atomic.Int64
	FetchErrors     atomic.Int64
	RateLimited     atomic.Int64
	ExtractAttempts atomic.Int64
	ExtractUsable   atomic.Int64
	ExtractEmpty    atomic.Int64
	RecordsFiltered atomic.Int64
	RecordsStored   atomic.Int64
	StoreErrors     atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"fetch_requests":   metrics.FetchRequests.Load(),
		"fetch_errors":     metrics.FetchErrors.Load(),
		"rate_limited":     metrics.RateLimited.Load(),
		"extract_attempts": metrics.ExtractAttempts.Load(),
		"extract_usable":   metrics.ExtractUsable.Load(),
		"extract_empty":    metrics.ExtractEmpty.Load(),
		"records_filtered": metrics.RecordsFiltered.Load(),
		"records_stored":   metrics.RecordsStored.Load(),
		"store_errors":     metrics.StoreErrors.Load(),
	}
}

// FormatMetrics returns the counters as a simple text format for the
// HTTP metrics endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"fetch_requests", "fetch_errors", "rate_limited",
		"extract_attempts", "extract_usable", "extract_empty",
		"records_filtered", "records_stored", "store_errors",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
