package pexels

import (
	"context"
	"strings"
	"time"

	"pexelsearch/pkg/config"
	errs "pexelsearch/pkg/errors"
	"pexelsearch/pkg/logger"
	"pexelsearch/pkg/pagination"
	"pexelsearch/pkg/ratelimit"
	"pexelsearch/pkg/retry"
)

const (
	// DefaultLimit is the number of photos a search returns by default
	DefaultLimit = 40

	// DefaultTimeout bounds each HTTP request
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies the client to the API
	DefaultUserAgent = "pexelsearch/1.0"

	bodyPreviewLen = 200
)

// Client searches Pexels photos. A Client is not safe for concurrent
// searches that also change its limit or offset.
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	timeout    time.Duration
	limit      int
	offset     int
	maxPerPage int

	retryAttempts int
	retryDelay    time.Duration
	lowWatermark  int64

	transport Transport
	decoder   Decoder
	retry     *retry.Config
	throttle  ratelimit.Limiter
	rates     *ratelimit.Tracker
	logger    logger.Logger
}

// Option configures a Client
type Option func(*Client) error

// WithTransport replaces the HTTP transport
func WithTransport(t Transport) Option {
	return func(c *Client) error {
		c.transport = t
		return nil
	}
}

// WithDecoder replaces the JSON decoder
func WithDecoder(d Decoder) Option {
	return func(c *Client) error {
		c.decoder = d
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithBaseURL points the client at another host, e.g. a test server
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		if u == "" {
			return errs.InvalidConfig("base URL must not be empty")
		}
		c.baseURL = u
		return nil
	}
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errs.InvalidConfig("timeout must be positive, got %s", d)
		}
		c.timeout = d
		return nil
	}
}

// WithRetry sets the total attempts per request and the pause between them
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) error {
		if attempts < 1 {
			return errs.InvalidConfig("retry attempts must be at least 1, got %d", attempts)
		}
		if delay < 0 {
			return errs.InvalidConfig("retry delay must not be negative, got %s", delay)
		}
		c.retryAttempts = attempts
		c.retryDelay = delay
		return nil
	}
}

// WithLimit sets the default number of photos per search
func WithLimit(n int) Option {
	return func(c *Client) error {
		return c.SetLimit(n)
	}
}

// WithOffset sets the default starting offset
func WithOffset(n int) Option {
	return func(c *Client) error {
		return c.SetOffset(n)
	}
}

// WithMaxPerPage lowers the page size below the API maximum
func WithMaxPerPage(n int) Option {
	return func(c *Client) error {
		if n < 1 || n > pagination.MaxPerPage {
			return errs.InvalidConfig("max per page must be between 1 and %d, got %d", pagination.MaxPerPage, n)
		}
		c.maxPerPage = n
		return nil
	}
}

// WithThrottle paces outgoing requests
func WithThrottle(l ratelimit.Limiter) Option {
	return func(c *Client) error {
		c.throttle = l
		return nil
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithLowWatermark warns when the remaining quota drops below n (0 disables)
func WithLowWatermark(n int64) Option {
	return func(c *Client) error {
		c.lowWatermark = n
		return nil
	}
}

// NewClient creates a client authenticated with apiKey
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errs.InvalidConfig("API key is required")
	}

	c := &Client{
		apiKey:        apiKey,
		baseURL:       BaseURL,
		userAgent:     DefaultUserAgent,
		timeout:       DefaultTimeout,
		limit:         DefaultLimit,
		maxPerPage:    pagination.MaxPerPage,
		retryAttempts: retry.DefaultMaxAttempts,
		retryDelay:    retry.DefaultDelay,
		decoder:       JSONDecoder{},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.logger == nil {
		c.logger = logger.GetLogger()
	}
	c.logger = c.logger.WithField("component", "pexels")

	if c.transport == nil {
		c.transport = NewHTTPTransport(nil, c.logger)
	}
	c.retry = retry.Fixed(c.retryAttempts, c.retryDelay, c.logger)
	c.rates = ratelimit.NewTracker(c.lowWatermark, c.logger)

	return c, nil
}

// NewClientFromConfig creates a client from loaded configuration
func NewClientFromConfig(cfg *config.Config, log logger.Logger, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errs.InvalidConfig("config is required")
	}

	base := []Option{
		WithLogger(log),
		WithLimit(cfg.Search.Limit),
		WithOffset(cfg.Search.Offset),
		WithLowWatermark(int64(cfg.RateLimit.LowWatermark)),
	}
	if cfg.Pexels.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.Pexels.BaseURL))
	}
	if cfg.Pexels.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.Pexels.UserAgent))
	}
	if cfg.Search.MaxPerPage != 0 {
		base = append(base, WithMaxPerPage(cfg.Search.MaxPerPage))
	}
	if cfg.Request.Timeout != 0 {
		base = append(base, WithTimeout(cfg.Request.Timeout))
	}
	if cfg.Retry.MaxAttempts != 0 {
		base = append(base, WithRetry(cfg.Retry.MaxAttempts, cfg.Retry.Delay))
	}
	if cfg.RateLimit.RequestsPerMinute > 0 {
		base = append(base, WithThrottle(ratelimit.NewThrottle(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)))
	}

	return NewClient(cfg.Pexels.APIKey, append(base, opts...)...)
}

// Search returns up to Limit() photos for query starting at Offset().
// Network and parsing failures yield the photos collected so far, possibly
// none; only invalid input is returned as an error.
func (c *Client) Search(query string) ([]Photo, error) {
	return c.SearchContext(context.Background(), query)
}

// SearchContext is Search with cancellation. A cancelled ctx ends the
// search early with the photos collected so far. An empty or blank query
// is rejected with an invalid_config error before any request is sent.
func (c *Client) SearchContext(ctx context.Context, query string) ([]Photo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.InvalidConfig("search query must not be empty")
	}

	policy := pagination.Policy{
		Limit:      c.limit,
		Offset:     c.offset,
		MaxPerPage: c.maxPerPage,
	}

	log := c.logger.WithField("query", query)
	log.DebugWithFields("starting search", map[string]interface{}{
		"limit":        policy.Limit,
		"offset":       policy.Offset,
		"max_per_page": policy.MaxPerPage,
	})

	photos, err := pagination.Accumulate(ctx, policy, func(ctx context.Context, w pagination.Window) ([]Photo, error) {
		return c.fetchPage(ctx, log, query, w)
	}, log)
	if err != nil {
		return nil, err
	}

	logger.LogSearchProgress(log, query, len(photos), policy.Limit)
	return photos, nil
}

// fetchPage requests one page, records its rate-limit headers and
// extracts its photos
func (c *Client) fetchPage(ctx context.Context, log logger.Logger, query string, w pagination.Window) ([]Photo, error) {
	if c.throttle != nil {
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}
	}

	url := SearchURL(c.baseURL, query, w)
	headers := c.headers()

	// Every transport failure is retried until ctx is done
	cfg := c.retry.WithContext(ctx)
	cfg.RetryIf = func(error) bool { return ctx.Err() == nil }

	resp, err := retry.DoWithResult(func() (*Response, error) {
		return c.transport.Get(ctx, url, headers, c.timeout)
	}, cfg)
	if err != nil {
		return nil, err
	}

	c.rates.Update(ratelimit.FromHeader(resp.Header))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WarnWithFields("API returned error status", map[string]interface{}{
			"status":       resp.StatusCode,
			"page":         w.Page,
			"body_preview": preview(resp.Body),
		})
	}

	body, err := c.decoder.Decode(resp.Body)
	if err != nil {
		log.WithError(err).ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"status":       resp.StatusCode,
			"page":         w.Page,
			"body_preview": preview(resp.Body),
		})
		return nil, err
	}

	photos, err := extractPhotos(body, query)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &errs.Error{
				Type:    errs.TypeForStatusCode(resp.StatusCode),
				Message: "search request rejected",
				Code:    resp.StatusCode,
				Err:     err,
			}
		}
		return nil, err
	}

	return photos, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": c.apiKey,
		"User-Agent":    c.userAgent,
		"Accept":        "application/json",
	}
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > bodyPreviewLen {
		s = s[:bodyPreviewLen] + "..."
	}
	return s
}

// RateLimits returns the quota reported by the last response. ok is false
// until a request has completed.
func (c *Client) RateLimits() (ratelimit.Snapshot, bool) {
	return c.rates.Latest()
}

// SetLimit changes the number of photos later searches return
func (c *Client) SetLimit(n int) error {
	if n < 0 {
		return errs.InvalidConfig("limit must not be negative, got %d", n)
	}
	c.limit = n
	return nil
}

// SetOffset changes where later searches start
func (c *Client) SetOffset(n int) error {
	if n < 0 {
		return errs.InvalidConfig("offset must not be negative, got %d", n)
	}
	c.offset = n
	return nil
}

// SetTimeout changes the per-request timeout; non-positive values are ignored
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Limit returns the current result limit
func (c *Client) Limit() int { return c.limit }

// Offset returns the current starting offset
func (c *Client) Offset() int { return c.offset }

// MaxPerPage returns the page size ceiling
func (c *Client) MaxPerPage() int { return c.maxPerPage }

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration { return c.timeout }

var _ Transport = (*HTTPTransport)(nil)
