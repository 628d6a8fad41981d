package ui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"pexelsearch/pkg/pexels"
	"pexelsearch/pkg/ratelimit"
)

// Output formats for search results
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatURLs  = "urls"
)

// Formats lists the accepted output formats
var Formats = []string{FormatTable, FormatJSON, FormatURLs}

// Photos renders search results in the given format
func (p *Printer) Photos(photos []pexels.Photo, format, size string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(photos)
	case FormatURLs:
		for _, photo := range photos {
			fmt.Fprintln(p.w, photoSrc(photo, size))
		}
		return nil
	case FormatTable, "":
		tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tID\tPHOTOGRAPHER\tURL")
		for i, photo := range photos {
			id := "-"
			if n, ok := photo.ID(); ok {
				id = strconv.FormatInt(n, 10)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, id, photo.Photographer(), photoSrc(photo, size))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", format, Formats)
	}
}

func photoSrc(photo pexels.Photo, size string) string {
	if size != "" {
		if src := photo.Src(size); src != "" {
			return src
		}
	}
	return photo.URL()
}

// RateLimits prints the last known quota
func (p *Printer) RateLimits(snap ratelimit.Snapshot, ok bool) {
	if !ok {
		p.Muted("rate limit: no response received")
		return
	}

	value := func(v *int64) string {
		if v == nil {
			return "unknown"
		}
		return strconv.FormatInt(*v, 10)
	}

	p.Info("Quota remaining", fmt.Sprintf("%s / %s", value(snap.Remaining), value(snap.Limit)))
	if reset, known := snap.ResetTime(); known {
		p.Info("Quota resets", reset.Format(time.RFC3339))
	}
	if snap.Exhausted() {
		p.Warning("Quota exhausted")
	}
}
