// Package retry runs an operation a bounded number of times with a pause
// between attempts.
//
// The Pexels client uses a fixed delay: by default two attempts in total,
// two seconds apart. Errors typed by pkg/errors decide whether another
// attempt is worthwhile; context cancellation never is.
//
// Basic usage:
//
//	cfg := retry.Fixed(2, 2*time.Second, logger.GetLogger())
//	resp, err := retry.DoWithResult(func() (*pexels.Response, error) {
//		return transport.Get(ctx, url, headers, timeout)
//	}, cfg.WithContext(ctx))
package retry
