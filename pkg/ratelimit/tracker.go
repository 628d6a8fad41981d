package ratelimit

import (
	"sync"

	"pexelsearch/pkg/logger"
)

// Tracker keeps the latest Snapshot seen by a client
type Tracker struct {
	mu           sync.RWMutex
	latest       Snapshot
	seen         bool
	lowWatermark int64
	log          logger.Logger
}

// NewTracker creates a tracker. A positive lowWatermark makes Update log a
// warning whenever the remaining quota falls below it.
func NewTracker(lowWatermark int64, log logger.Logger) *Tracker {
	return &Tracker{lowWatermark: lowWatermark, log: log}
}

// Update replaces the stored snapshot
func (t *Tracker) Update(s Snapshot) {
	t.mu.Lock()
	t.latest = s
	t.seen = true
	t.mu.Unlock()

	if t.lowWatermark > 0 && s.Below(t.lowWatermark) {
		var limit, reset int64
		if s.Limit != nil {
			limit = *s.Limit
		}
		if s.Reset != nil {
			reset = *s.Reset
		}
		logger.LogRateLimit(t.log, *s.Remaining, limit, reset)
	}
}

// Latest returns the stored snapshot; ok is false until the first Update
func (t *Tracker) Latest() (Snapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest, t.seen
}
