// Package ratelimit reads the quota headers returned by the Pexels API and
// optionally paces outbound requests.
//
// The API reports its quota on every response:
//
//	X-Ratelimit-Limit: 200
//	X-Ratelimit-Remaining: 199
//	X-Ratelimit-Reset: 1700000000
//
// ParseHeaderLines turns those lines into a Snapshot. Missing or malformed
// headers leave the matching field nil rather than zero. A Tracker keeps
// the latest Snapshot for a client and warns when the remaining quota runs
// low.
//
// The quota is observed, not enforced. A Throttle built on
// golang.org/x/time/rate can be configured to space requests out:
//
//	throttle := ratelimit.NewThrottle(60, 1)
//	if err := throttle.Wait(ctx); err != nil {
//	    return err
//	}
package ratelimit
