package pagination

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "pexelsearch/pkg/errors"
	"pexelsearch/pkg/logger"
)

// fakeSource serves sequential integers, page-aligned, up to total items.
type fakeSource struct {
	total   int
	windows []Window
	failAt  int // 1-based call number that fails, 0 = never
}

func (s *fakeSource) fetch(ctx context.Context, w Window) ([]int, error) {
	s.windows = append(s.windows, w)
	if s.failAt > 0 && len(s.windows) == s.failAt {
		return nil, errs.New(errs.ErrorTypeNetwork, "connection refused")
	}

	start := (w.Page - 1) * w.PerPage
	var items []int
	for i := start; i < start+w.PerPage && i < s.total; i++ {
		items = append(items, i)
	}
	return items, nil
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func TestAccumulateFullPagesReturnsExactlyLimit(t *testing.T) {
	for _, limit := range []int{1, 7, 39, 40, 41, 80, 123} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			src := &fakeSource{total: 10000}

			got, err := Accumulate(context.Background(), Policy{Limit: limit, MaxPerPage: 40}, src.fetch, nil)

			require.NoError(t, err)
			assert.Equal(t, seq(0, limit), got)
			for _, w := range src.windows {
				assert.LessOrEqual(t, w.PerPage, 40)
				assert.LessOrEqual(t, w.PerPage, limit)
			}
		})
	}
}

func TestAccumulateShortPageStops(t *testing.T) {
	src := &fakeSource{total: 55}

	got, stats, err := AccumulateWithStats(context.Background(), Policy{Limit: 100, MaxPerPage: 40}, src.fetch, nil)

	require.NoError(t, err)
	assert.Equal(t, seq(0, 55), got)
	assert.Equal(t, StopShortPage, stats.Reason)
	assert.Equal(t, 2, stats.Pages)
	assert.Equal(t, []Window{{Page: 1, PerPage: 40}, {Page: 2, PerPage: 40}}, src.windows)
}

func TestAccumulateEmptyFirstPage(t *testing.T) {
	src := &fakeSource{total: 0}

	got, stats, err := AccumulateWithStats(context.Background(), Policy{Limit: 10, MaxPerPage: 40}, src.fetch, nil)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, StopShortPage, stats.Reason)
}

func TestAccumulateOffsetCorrection(t *testing.T) {
	src := &fakeSource{total: 10000}

	got, err := Accumulate(context.Background(), Policy{Limit: 10, Offset: 5, MaxPerPage: 10}, src.fetch, nil)

	require.NoError(t, err)
	require.NotEmpty(t, src.windows)
	assert.Equal(t, Window{Page: 1, PerPage: 10}, src.windows[0])
	assert.Equal(t, 5, got[0], "first five items of page one are dropped")
	assert.Len(t, got, 10)
}

// The head trim is applied to every page, not just the first. Against a
// page-aligned source this skips the same slice of each later page.
func TestAccumulateOffsetCorrectionAppliesToEveryPage(t *testing.T) {
	src := &fakeSource{total: 10000}

	got, err := Accumulate(context.Background(), Policy{Limit: 8, Offset: 5, MaxPerPage: 10}, src.fetch, nil)

	require.NoError(t, err)
	// perPage = min(8, 10) = 8, offset 5 lands on page 1 (items 0..7), drop 5
	// → 5,6,7. Offset advances to 13, page 2 (items 8..15), drop 13%8 = 5
	// → 13,14,15. Page 3 (16..23), drop 5 → 21,22 truncated to the limit.
	assert.Equal(t, []int{5, 6, 7, 13, 14, 15, 21, 22}, got)
	assert.Equal(t, []Window{
		{Page: 1, PerPage: 8},
		{Page: 2, PerPage: 8},
		{Page: 3, PerPage: 8},
	}, src.windows)
}

func TestAccumulateZeroLimitMakesNoCalls(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, w Window) ([]int, error) {
		calls++
		return nil, nil
	}

	got, err := Accumulate(context.Background(), Policy{Limit: 0, MaxPerPage: 40}, fetch, nil)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, calls)
}

func TestAccumulateInvalidPolicy(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, w Window) ([]int, error) {
		calls++
		return nil, nil
	}

	for _, p := range []Policy{
		{Limit: -1, MaxPerPage: 40},
		{Limit: 10, MaxPerPage: 0},
		{Limit: 10, MaxPerPage: 41},
		{Limit: 10, Offset: -3, MaxPerPage: 40},
	} {
		got, err := Accumulate(context.Background(), p, fetch, nil)
		require.Error(t, err)
		assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidConfig))
		assert.Nil(t, got)
	}
	assert.Zero(t, calls)
}

func TestAccumulateFetchErrorReturnsPartial(t *testing.T) {
	log := logger.NewTestLogger()
	src := &fakeSource{total: 10000, failAt: 3}

	got, stats, err := AccumulateWithStats(context.Background(), Policy{Limit: 200, MaxPerPage: 40}, src.fetch, log)

	require.NoError(t, err)
	assert.Equal(t, seq(0, 80), got)
	assert.Equal(t, StopFetchError, stats.Reason)
	assert.True(t, errs.IsType(stats.Err, errs.ErrorTypeNetwork))
	assert.True(t, log.HasMessage("page fetch failed, returning partial results"))
}

func TestAccumulateFirstFetchErrorReturnsEmpty(t *testing.T) {
	fetch := func(ctx context.Context, w Window) ([]int, error) {
		return nil, errors.New("missing photos field")
	}

	got, err := Accumulate(context.Background(), Policy{Limit: 40, MaxPerPage: 40}, fetch, nil)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAccumulateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	fetch := func(ctx context.Context, w Window) ([]int, error) {
		calls++
		cancel()
		return seq((w.Page-1)*w.PerPage, w.Page*w.PerPage), nil
	}

	got, stats, err := AccumulateWithStats(ctx, Policy{Limit: 100, MaxPerPage: 10}, fetch, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, seq(0, 10), got)
	assert.Equal(t, StopCancelled, stats.Reason)
	assert.ErrorIs(t, stats.Err, context.Canceled)
}

func TestAccumulateCancelledDuringFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	fetch := func(ctx context.Context, w Window) ([]int, error) {
		calls++
		if calls == 2 {
			cancel()
			return nil, fmt.Errorf("retry cancelled: %w", context.Canceled)
		}
		return seq((w.Page-1)*w.PerPage, w.Page*w.PerPage), nil
	}

	got, stats, err := AccumulateWithStats(ctx, Policy{Limit: 100, MaxPerPage: 10}, fetch, nil)

	require.NoError(t, err)
	assert.Equal(t, seq(0, 10), got)
	assert.Equal(t, StopCancelled, stats.Reason)
	assert.ErrorIs(t, stats.Err, context.Canceled)
}

func TestAccumulateOversizedPageTruncated(t *testing.T) {
	fetch := func(ctx context.Context, w Window) ([]int, error) {
		return seq(0, 60), nil
	}

	got, err := Accumulate(context.Background(), Policy{Limit: 30, MaxPerPage: 40}, fetch, nil)

	require.NoError(t, err)
	assert.Equal(t, seq(0, 30), got)
}

func TestAccumulateIdempotent(t *testing.T) {
	policy := Policy{Limit: 90, MaxPerPage: 40}

	first, err := Accumulate(context.Background(), policy, (&fakeSource{total: 10000}).fetch, nil)
	require.NoError(t, err)
	second, err := Accumulate(context.Background(), policy, (&fakeSource{total: 10000}).fetch, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAccumulateLogsMetrics(t *testing.T) {
	log := logger.NewTestLogger()
	src := &fakeSource{total: 10000}

	_, err := Accumulate(context.Background(), Policy{Limit: 50, MaxPerPage: 40}, src.fetch, log)
	require.NoError(t, err)

	metrics := log.GetMessagesByLevel("INFO")
	require.Len(t, metrics, 1)
	assert.Equal(t, "paginate", metrics[0].Fields["operation"])
	assert.Equal(t, 2, metrics[0].Fields["pages"])
	assert.Equal(t, 50, metrics[0].Fields["returned"])
	assert.Equal(t, "limit_reached", metrics[0].Fields["stop_reason"])
	assert.Equal(t, 2, log.CountMessage("page accumulated"))
}
