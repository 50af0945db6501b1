package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables over Default and
// validates the result. Unset and empty variables keep the default.
func Load() (*Config, error) {
	cfg := Default()

	var env envReader
	env.setString("PRICESHEET_MODEL_PATH", &cfg.Classifier.ModelPath)
	env.setInt("MODEL_MAX_FEATURES", &cfg.Classifier.MaxFeatures)

	env.setInt("HEADER_SCAN_ROWS", &cfg.Header.ScanRows)
	env.setInt("HEADER_MIN_SCORE", &cfg.Header.MinScore)
	env.setInt("HEADER_LONG_CELL_CHARS", &cfg.Header.LongCellChars)

	env.setInt("STOCK_MIN_UNITS", &cfg.Extract.StockMinUnits)

	env.setBool("LEARN_AUTO", &cfg.Learn.Auto)
	env.setInt("LEARN_MIN_SAMPLES", &cfg.Learn.MinSamples)
	env.setInt("LEARN_MAX_SAMPLES", &cfg.Learn.MaxSamples)
	env.setString("PRICESHEET_JOURNAL_PATH", &cfg.Learn.JournalPath)

	env.setInt("PARSE_CACHE_SIZE", &cfg.Parse.CacheSize)
	env.setInt("PARSE_CONCURRENCY", &cfg.Parse.Concurrency)
	env.setDuration("PARSE_TIMEOUT", &cfg.Parse.Timeout)
	env.setInt64("PARSE_MAX_FILE_SIZE", &cfg.Parse.MaxFileSize)

	env.setString("LOG_LEVEL", &cfg.Logging.Level)
	env.setString("LOG_FORMAT", &cfg.Logging.Format)

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// envReader overwrites settings from the environment and keeps every parse
// failure so they are reported together.
type envReader struct {
	errs []error
}

func (r *envReader) lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *envReader) fail(name, value string, err error) {
	r.errs = append(r.errs, fmt.Errorf("invalid value for %s=%q: %w", name, value, err))
}

func (r *envReader) setString(name string, dst *string) {
	if v, ok := r.lookup(name); ok {
		*dst = v
	}
}

func (r *envReader) setInt(name string, dst *int) {
	v, ok := r.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = n
}

func (r *envReader) setInt64(name string, dst *int64) {
	v, ok := r.lookup(name)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = n
}

func (r *envReader) setBool(name string, dst *bool) {
	v, ok := r.lookup(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = b
}

func (r *envReader) setDuration(name string, dst *time.Duration) {
	v, ok := r.lookup(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = d
}

// Validate checks that the configuration is usable and reports every
// failure at once.
func (c *Config) Validate() error {
	var errs []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Sprintf(format, args...))
		}
	}

	check(c.Classifier.MaxFeatures >= 0, "MODEL_MAX_FEATURES must be non-negative")

	check(c.Header.ScanRows > 0, "HEADER_SCAN_ROWS must be positive")
	check(c.Header.MinScore > 0, "HEADER_MIN_SCORE must be positive")
	check(c.Header.LongCellChars > 0, "HEADER_LONG_CELL_CHARS must be positive")

	check(c.Extract.StockMinUnits >= 0, "STOCK_MIN_UNITS must be non-negative")

	check(c.Learn.MinSamples > 0, "LEARN_MIN_SAMPLES must be positive")
	check(c.Learn.MaxSamples >= 0, "LEARN_MAX_SAMPLES must be non-negative")
	check(c.Learn.MaxSamples == 0 || c.Learn.MaxSamples >= c.Learn.MinSamples,
		"LEARN_MAX_SAMPLES (%d) must be >= LEARN_MIN_SAMPLES (%d)", c.Learn.MaxSamples, c.Learn.MinSamples)

	check(c.Parse.CacheSize >= 0, "PARSE_CACHE_SIZE must be non-negative")
	check(c.Parse.Concurrency > 0, "PARSE_CONCURRENCY must be positive")
	check(c.Parse.Timeout > 0, "PARSE_TIMEOUT must be positive")
	check(c.Parse.MaxFileSize >= 0, "PARSE_MAX_FILE_SIZE must be non-negative")

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error, disabled", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: console, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Classifier: %+v, Header: %+v, Extract: %+v, Learn: %+v, Parse: {CacheSize:%d Concurrency:%d Timeout:%s MaxFileSize:%d}, Logging: %+v}",
		c.Classifier, c.Header, c.Extract, c.Learn,
		c.Parse.CacheSize, c.Parse.Concurrency, c.Parse.Timeout, c.Parse.MaxFileSize,
		c.Logging)
}
