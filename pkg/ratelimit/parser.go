package ratelimit

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Header names as emitted by the API.
const (
	HeaderRemaining = "X-Ratelimit-Remaining"
	HeaderLimit     = "X-Ratelimit-Limit"
	HeaderReset     = "X-Ratelimit-Reset"
)

// ParseHeaderLines extracts a Snapshot from raw "Name: value" header lines.
// Lines without a colon, unknown names and non-integer values are ignored.
func ParseHeaderLines(lines []string) Snapshot {
	var snap Snapshot

	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		var dst **int64
		switch name {
		case HeaderRemaining:
			dst = &snap.Remaining
		case HeaderLimit:
			dst = &snap.Limit
		case HeaderReset:
			dst = &snap.Reset
		default:
			continue
		}

		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			continue
		}
		*dst = &n
	}

	return snap
}

// HeaderLines renders response headers as "Name: value" lines in
// canonical-name order, one line per value.
func HeaderLines(h http.Header) []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		for _, v := range h[name] {
			lines = append(lines, name+": "+v)
		}
	}
	return lines
}

// FromHeader parses the rate-limit headers of an HTTP response
func FromHeader(h http.Header) Snapshot {
	return ParseHeaderLines(HeaderLines(h))
}
