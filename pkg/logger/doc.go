// Package logger provides the structured logging interface used across pexelsearch.
//
// It wraps zerolog with:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Colored console output on stderr, optionally mirrored to a file
// - A global logger for the command, and injectable instances for the library
// - TestLogger, which captures messages for assertions in tests
//
// Basic Usage:
//
//	err := logger.Initialize(&config.LoggingConfig{Level: "info"})
//
//	logger.Info("search started")
//	logger.WithField("query", "mountains").Info("page fetched")
//
// Library code receives a Logger instead of reaching for the global one:
//
//	client, err := pexels.NewClient(apiKey, pexels.WithLogger(log))
package logger
