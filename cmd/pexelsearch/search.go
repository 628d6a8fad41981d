package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pexelsearch/pkg/auth"
	"pexelsearch/pkg/config"
	"pexelsearch/pkg/logger"
	"pexelsearch/pkg/pexels"
	"pexelsearch/pkg/ui"
)

type searchOptions struct {
	limit             int
	offset            int
	timeout           time.Duration
	maxAttempts       int
	retryDelay        time.Duration
	requestsPerMinute int
	format            string
	size              string
	showRateLimit     bool
}

func newSearchCmd(global *globalOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Pexels for photos matching a query",
		Long: `Search Pexels for photos matching a query and print them.

Results are fetched page by page until --limit photos are collected or the
API has no more. Network failures are retried; if they persist the photos
collected so far are printed.`,
		Example: `  # 40 photos of mountains as a table
  pexelsearch search mountains

  # 100 photos starting at the 20th, as JSON
  pexelsearch search "red car" --limit 100 --offset 20 --format json

  # Original-size image URLs only
  pexelsearch search ocean --format urls --size original`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, global, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 40, "number of photos to return")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "position of the first photo")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request timeout")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 2, "attempts per request, including the first")
	cmd.Flags().DurationVar(&opts.retryDelay, "retry-delay", 2*time.Second, "pause between attempts")
	cmd.Flags().IntVar(&opts.requestsPerMinute, "rate-limit", 0, "requests per minute (0 = unlimited)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", ui.FormatTable, fmt.Sprintf("output format (%s)", strings.Join(ui.Formats, ", ")))
	cmd.Flags().StringVar(&opts.size, "size", "", "image size to print instead of the page URL (original, large, medium, small, ...)")
	cmd.Flags().BoolVar(&opts.showRateLimit, "show-rate-limit", false, "print the API quota after the search")

	return cmd
}

// flagMap collects only the flags the user set so config files and the
// environment are not overridden by defaults
func (o *searchOptions) flagMap(cmd *cobra.Command, global *globalOptions) map[string]interface{} {
	flags := global.baseFlags()
	changed := cmd.Flags().Changed

	if changed("limit") {
		flags["limit"] = o.limit
	}
	if changed("offset") {
		flags["offset"] = o.offset
	}
	if changed("timeout") {
		flags["timeout"] = o.timeout
	}
	if changed("max-attempts") {
		flags["max-attempts"] = o.maxAttempts
	}
	if changed("retry-delay") {
		flags["retry-delay"] = o.retryDelay
	}
	if changed("rate-limit") {
		flags["requests-per-minute"] = o.requestsPerMinute
	}
	return flags
}

func runSearch(cmd *cobra.Command, global *globalOptions, opts *searchOptions, query string) error {
	cfg, err := loadConfig(global, opts.flagMap(cmd, global))
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.LogComponentStart(log, "search", map[string]interface{}{
		"query":  query,
		"limit":  cfg.Search.Limit,
		"offset": cfg.Search.Offset,
	})

	client, err := pexels.NewClientFromConfig(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt)
	defer stop()

	photos, err := client.SearchContext(ctx, query)
	if err != nil {
		return err
	}

	out := global.printer(cmd)
	if err := out.Photos(photos, opts.format, opts.size); err != nil {
		return err
	}

	status := global.errPrinter(cmd)
	if len(photos) < cfg.Search.Limit {
		status.Warning(fmt.Sprintf("returned %d of %d requested photos", len(photos), cfg.Search.Limit))
	}
	if opts.showRateLimit {
		snap, ok := client.RateLimits()
		status.RateLimits(snap, ok)
	}
	return nil
}

// loadConfig loads configuration and falls back to the credential stores
// for the API key
func loadConfig(global *globalOptions, flags map[string]interface{}) (*config.Config, error) {
	cfg, err := config.LoadUnvalidated(global.configFile, flags)
	if err != nil {
		return nil, err
	}

	if cfg.Pexels.APIKey == "" {
		key, _, err := credentialManager().Resolve("", global.profile)
		if err != nil && !errors.Is(err, auth.ErrCredentialsNotFound) {
			return nil, err
		}
		cfg.Pexels.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
