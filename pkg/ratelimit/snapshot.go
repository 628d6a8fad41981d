package ratelimit

import "time"

// Snapshot is the quota information reported by the most recent response.
// A nil field means the header was absent or unparsable.
type Snapshot struct {
	Remaining *int64
	Limit     *int64
	Reset     *int64 // epoch seconds
}

// ResetTime returns the reset epoch as a time, if known
func (s Snapshot) ResetTime() (time.Time, bool) {
	if s.Reset == nil {
		return time.Time{}, false
	}
	return time.Unix(*s.Reset, 0), true
}

// Exhausted reports whether the server said no requests remain
func (s Snapshot) Exhausted() bool {
	return s.Remaining != nil && *s.Remaining <= 0
}

// Below reports whether the remaining quota is known and under watermark
func (s Snapshot) Below(watermark int64) bool {
	return s.Remaining != nil && *s.Remaining < watermark
}

// Fields renders the snapshot for structured logging
func (s Snapshot) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, 3)
	if s.Remaining != nil {
		fields["remaining"] = *s.Remaining
	}
	if s.Limit != nil {
		fields["limit"] = *s.Limit
	}
	if s.Reset != nil {
		fields["reset"] = *s.Reset
	}
	return fields
}
