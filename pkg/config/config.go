package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// MaxPerPage is the largest page size the search endpoint accepts
	MaxPerPage = 40

	// DefaultBaseURL is the Pexels API host
	DefaultBaseURL = "https://api.pexels.com"
)

// Config holds all configuration options for the Pexels search client
type Config struct {
	// Pexels credentials and endpoint
	Pexels PexelsConfig `yaml:"pexels" json:"pexels"`

	// Pagination defaults
	Search SearchConfig `yaml:"search" json:"search"`

	// Per-request settings
	Request RequestConfig `yaml:"request" json:"request"`

	// Retry configuration
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// PexelsConfig holds Pexels-specific configuration
type PexelsConfig struct {
	APIKey    string `yaml:"api_key" json:"api_key" env:"PEXELS_API_KEY"`
	BaseURL   string `yaml:"base_url" json:"base_url" env:"PEXELSEARCH_BASE_URL"`
	UserAgent string `yaml:"user_agent" json:"user_agent" env:"PEXELSEARCH_USER_AGENT"`
}

// SearchConfig holds pagination defaults for search calls
type SearchConfig struct {
	Limit      int `yaml:"limit" json:"limit" env:"PEXELSEARCH_LIMIT"`
	Offset     int `yaml:"offset" json:"offset" env:"PEXELSEARCH_OFFSET"`
	MaxPerPage int `yaml:"max_per_page" json:"max_per_page" env:"PEXELSEARCH_MAX_PER_PAGE"`
}

// RequestConfig holds per-request configuration
type RequestConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"PEXELSEARCH_TIMEOUT"`
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts" env:"PEXELSEARCH_RETRY_ATTEMPTS"`
	Delay       time.Duration `yaml:"delay" json:"delay" env:"PEXELSEARCH_RETRY_DELAY"`
}

// RateLimitConfig holds outbound pacing and rate-limit reporting configuration
type RateLimitConfig struct {
	// RequestsPerMinute paces outgoing requests; 0 disables pacing
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute" env:"PEXELSEARCH_REQUESTS_PER_MINUTE"`
	Burst             int `yaml:"burst" json:"burst" env:"PEXELSEARCH_BURST"`
	// LowWatermark triggers a warning when fewer requests remain in the quota
	LowWatermark int `yaml:"low_watermark" json:"low_watermark" env:"PEXELSEARCH_LOW_WATERMARK"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" env:"PEXELSEARCH_LOG_LEVEL"`
	File  string `yaml:"file" json:"file" env:"PEXELSEARCH_LOG_FILE"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pexels: PexelsConfig{
			BaseURL:   DefaultBaseURL,
			UserAgent: "pexelsearch/1.0",
		},
		Search: SearchConfig{
			Limit:      40,
			Offset:     0,
			MaxPerPage: MaxPerPage,
		},
		Request: RequestConfig{
			Timeout: 10 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts: 2,
			Delay:       2000 * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 0,
			Burst:             1,
			LowWatermark:      10,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv overrides configuration with environment variables.
// Unset variables leave the current value untouched.
func (c *Config) LoadFromEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".pexelsearch.yaml",
		".pexelsearch.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "pexelsearch", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "pexelsearch", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".pexelsearch.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Pexels.APIKey == "" {
		errs = append(errs, errors.New("Pexels API key is required"))
	}
	if c.Pexels.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required"))
	}

	if c.Search.Limit < 0 {
		errs = append(errs, errors.New("limit cannot be negative"))
	}
	if c.Search.Offset < 0 {
		errs = append(errs, errors.New("offset cannot be negative"))
	}
	if c.Search.MaxPerPage <= 0 || c.Search.MaxPerPage > MaxPerPage {
		errs = append(errs, fmt.Errorf("max per page must be between 1 and %d", MaxPerPage))
	}

	if c.Request.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, errors.New("retry attempts must be at least 1"))
	}
	if c.Retry.Delay < 0 {
		errs = append(errs, errors.New("retry delay cannot be negative"))
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("burst size must be positive when pacing is enabled"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Masked returns a copy safe to print, with the API key obscured
func (c *Config) Masked() *Config {
	masked := *c
	masked.Pexels.APIKey = MaskSecret(c.Pexels.APIKey)
	return &masked
}

// MaskSecret masks all but the first and last 4 characters of a secret
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		c.Pexels.APIKey = apiKey
	}
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.Pexels.BaseURL = baseURL
	}
	if limit, ok := flags["limit"].(int); ok {
		c.Search.Limit = limit
	}
	if offset, ok := flags["offset"].(int); ok {
		c.Search.Offset = offset
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.Request.Timeout = timeout
	}
	if attempts, ok := flags["max-attempts"].(int); ok && attempts > 0 {
		c.Retry.MaxAttempts = attempts
	}
	if delay, ok := flags["retry-delay"].(time.Duration); ok {
		c.Retry.Delay = delay
	}
	if rpm, ok := flags["requests-per-minute"].(int); ok {
		c.RateLimit.RequestsPerMinute = rpm
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// LoadUnvalidated loads configuration from all sources without validating it.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func LoadUnvalidated(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".pexelsearch.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	return config, nil
}

// Load loads configuration from all sources and validates the result
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	config, err := LoadUnvalidated(configPath, flags)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
