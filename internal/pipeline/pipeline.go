// Package pipeline runs the discovery loop: fetch each video page,
// extract a record, filter the batch, persist the keepers. URLs are
// processed sequentially; pacing lives in the fetch client.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tikradar/internal/extract"
	"tikradar/internal/fetch"
	"tikradar/internal/filter"
)

// Fetcher retrieves one video page as an extraction payload.
type Fetcher interface {
	Fetch(ctx context.Context, videoURL string) (*extract.Payload, error)
}

// Storer persists extracted records.
type Storer interface {
	Upsert(ctx context.Context, rec *extract.Record) error
}

// Runner wires the stages together.
type Runner struct {
	Fetcher Fetcher
	Engine  *extract.Engine
	Store   Storer
}

// Result summarizes one discovery run.
type Result struct {
	Requested int      `json:"requested"`
	Fetched   int      `json:"fetched"`
	Usable    int      `json:"usable"`
	Kept      int      `json:"kept"`
	Stored    int      `json:"stored"`
	Failed    []string `json:"failed,omitempty"`
}

// Run processes urls in order and returns the run summary. Individual
// page failures are logged and counted, never fatal; only context
// cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, urls []string, th filter.Thresholds) (Result, error) {
	res := Result{Requested: len(urls)}
	var recs []*extract.Record

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		metrics.FetchRequests.Add(1)
		p, err := r.Fetcher.Fetch(ctx, u)
		if err != nil {
			metrics.FetchErrors.Add(1)
			if errors.Is(err, fetch.ErrRateLimited) {
				metrics.RateLimited.Add(1)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return res, err
			}
			slog.Warn("fetch failed", slog.String("url", u), slog.Any("error", err))
			res.Failed = append(res.Failed, u)
			continue
		}
		res.Fetched++

		metrics.ExtractAttempts.Add(1)
		rec, rep := r.Engine.ExtractWithReport(p)
		if rec == nil {
			metrics.ExtractEmpty.Add(1)
			slog.Info("no usable record", slog.String("url", u), slog.Int("resolved", rep.Resolved))
			continue
		}
		metrics.ExtractUsable.Add(1)
		res.Usable++
		recs = append(recs, rec)
	}

	kept := filter.Apply(recs, th, time.Now().UTC())
	metrics.RecordsFiltered.Add(int64(len(recs) - len(kept)))
	res.Kept = len(kept)

	for _, rec := range kept {
		if err := r.Store.Upsert(ctx, rec); err != nil {
			metrics.StoreErrors.Add(1)
			slog.Warn("store failed", slog.String("video_id", rec.VideoID), slog.Any("error", err))
			continue
		}
		metrics.RecordsStored.Add(1)
		res.Stored++
	}

	slog.Info("discovery run done",
		slog.Int("requested", res.Requested),
		slog.Int("fetched", res.Fetched),
		slog.Int("usable", res.Usable),
		slog.Int("stored", res.Stored))
	return res, nil
}
