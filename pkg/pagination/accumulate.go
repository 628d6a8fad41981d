package pagination

import (
	"context"
	"time"

	"pexelsearch/pkg/logger"
)

// StopReason says why an accumulation run ended
type StopReason string

const (
	StopNone       StopReason = "none"
	StopLimit      StopReason = "limit_reached"
	StopShortPage  StopReason = "short_page"
	StopFetchError StopReason = "fetch_failed"
	StopCancelled  StopReason = "cancelled"
)

// FetchFunc retrieves one page. An error ends the run softly.
type FetchFunc[T any] func(ctx context.Context, w Window) ([]T, error)

// Stats describes a finished run
type Stats struct {
	Pages    int
	Fetched  int
	Returned int
	Reason   StopReason
	Err      error
	Duration time.Duration
}

// Accumulate pages through fetch until policy.Limit results are collected or
// the source runs dry. Only an invalid policy is returned as an error; fetch
// failures and cancellation end the run with whatever was collected.
//
// The first offset%perPage items of every page are dropped, which assumes the
// server returns page-aligned results for the requested page.
func Accumulate[T any](ctx context.Context, policy Policy, fetch FetchFunc[T], log logger.Logger) ([]T, error) {
	results, _, err := AccumulateWithStats(ctx, policy, fetch, log)
	return results, err
}

// AccumulateWithStats is Accumulate that also reports how the run went
func AccumulateWithStats[T any](ctx context.Context, policy Policy, fetch FetchFunc[T], log logger.Logger) ([]T, Stats, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	results := make([]T, 0)
	stats := Stats{Reason: StopNone}

	if policy.Limit == 0 {
		return results, stats, nil
	}
	if err := policy.Validate(); err != nil {
		return nil, stats, err
	}

	start := time.Now()
	offset := policy.Offset

	for {
		if err := ctx.Err(); err != nil {
			stats.Reason = StopCancelled
			stats.Err = err
			break
		}

		w, err := NextPage(offset, policy.Limit, policy.MaxPerPage)
		if err != nil {
			return nil, stats, err
		}

		items, err := fetch(ctx, w)
		if err != nil {
			stats.Reason = StopFetchError
			stats.Err = err
			if ctx.Err() != nil {
				stats.Reason = StopCancelled
			}
			log.WithError(err).WarnWithFields("page fetch failed, returning partial results", map[string]interface{}{
				"page":      w.Page,
				"per_page":  w.PerPage,
				"collected": len(results),
			})
			break
		}
		stats.Pages++

		count := len(items)
		stats.Fetched += count

		skip := offset % w.PerPage
		if skip > count {
			skip = count
		}
		results = append(results, items[skip:]...)

		log.DebugWithFields("page accumulated", map[string]interface{}{
			"page":      w.Page,
			"per_page":  w.PerPage,
			"received":  count,
			"skipped":   skip,
			"collected": len(results),
		})

		if len(results) >= policy.Limit {
			results = results[:policy.Limit]
			stats.Reason = StopLimit
			break
		}
		if count < w.PerPage {
			stats.Reason = StopShortPage
			break
		}
		offset += count
	}

	stats.Returned = len(results)
	stats.Duration = time.Since(start)

	fields := map[string]interface{}{
		"pages":       stats.Pages,
		"fetched":     stats.Fetched,
		"returned":    stats.Returned,
		"stop_reason": string(stats.Reason),
		"duration_ms": stats.Duration.Milliseconds(),
	}
	logger.LogMetrics(log, "paginate", fields)

	return results, stats, nil
}
