package ratelimit

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderLines(t *testing.T) {
	snap := ParseHeaderLines([]string{
		"X-Ratelimit-Remaining: 199",
		"X-Ratelimit-Limit: 200",
		"X-Ratelimit-Reset: 1000",
	})

	require.NotNil(t, snap.Remaining)
	require.NotNil(t, snap.Limit)
	require.NotNil(t, snap.Reset)
	assert.Equal(t, int64(199), *snap.Remaining)
	assert.Equal(t, int64(200), *snap.Limit)
	assert.Equal(t, int64(1000), *snap.Reset)
}

func TestParseHeaderLinesEmpty(t *testing.T) {
	snap := ParseHeaderLines(nil)

	assert.Nil(t, snap.Remaining)
	assert.Nil(t, snap.Limit)
	assert.Nil(t, snap.Reset)
}

func TestParseHeaderLinesIgnoresNoise(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"status line", "HTTP/1.1 200 OK"},
		{"lowercase name", "x-ratelimit-remaining: 5"},
		{"non numeric", "X-Ratelimit-Remaining: lots"},
		{"empty value", "X-Ratelimit-Remaining:"},
		{"other header", "Content-Type: application/json"},
		{"space before colon", "X-Ratelimit-Remaining : 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := ParseHeaderLines([]string{tt.line})
			assert.Nil(t, snap.Remaining)
			assert.Nil(t, snap.Limit)
			assert.Nil(t, snap.Reset)
		})
	}
}

func TestParseHeaderLinesSplitsOnFirstColon(t *testing.T) {
	snap := ParseHeaderLines([]string{"X-Ratelimit-Reset:  42  ", "X-Ratelimit-Limit: 1:2"})

	require.NotNil(t, snap.Reset)
	assert.Equal(t, int64(42), *snap.Reset)
	assert.Nil(t, snap.Limit)
}

func TestParseHeaderLinesZeroIsNotAbsent(t *testing.T) {
	snap := ParseHeaderLines([]string{"X-Ratelimit-Remaining: 0"})

	require.NotNil(t, snap.Remaining)
	assert.Equal(t, int64(0), *snap.Remaining)
	assert.True(t, snap.Exhausted())
}

func TestHeaderLines(t *testing.T) {
	h := http.Header{}
	h.Set("X-Ratelimit-Remaining", "10")
	h.Set("Content-Type", "application/json")
	h.Add("Vary", "Accept")
	h.Add("Vary", "Origin")

	assert.Equal(t, []string{
		"Content-Type: application/json",
		"Vary: Accept",
		"Vary: Origin",
		"X-Ratelimit-Remaining: 10",
	}, HeaderLines(h))
	assert.Empty(t, HeaderLines(nil))
}

func TestFromHeader(t *testing.T) {
	h := http.Header{}
	h.Set("x-ratelimit-remaining", "7")
	h.Set("x-ratelimit-limit", "200")

	snap := FromHeader(h)

	require.NotNil(t, snap.Remaining)
	assert.Equal(t, int64(7), *snap.Remaining)
	assert.Equal(t, int64(200), *snap.Limit)
	assert.Nil(t, snap.Reset)
}

func TestSnapshotHelpers(t *testing.T) {
	var empty Snapshot
	_, ok := empty.ResetTime()
	assert.False(t, ok)
	assert.False(t, empty.Exhausted())
	assert.False(t, empty.Below(10))
	assert.Empty(t, empty.Fields())

	snap := ParseHeaderLines([]string{"X-Ratelimit-Remaining: 3", "X-Ratelimit-Reset: 1700000000"})
	reset, ok := snap.ResetTime()
	require.True(t, ok)
	assert.True(t, reset.Equal(time.Unix(1700000000, 0)))
	assert.True(t, snap.Below(10))
	assert.False(t, snap.Below(3))
	assert.Equal(t, map[string]interface{}{"remaining": int64(3), "reset": int64(1700000000)}, snap.Fields())
}
