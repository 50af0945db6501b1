// Package config loads pricesheet settings from environment variables with
// defaults, and validates them on startup.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Classifier ClassifierConfig
	Header     HeaderConfig
	Extract    ExtractConfig
	Learn      LearnConfig
	Parse      ParseConfig
	Logging    LoggingConfig
}

// ClassifierConfig holds model artifact settings.
type ClassifierConfig struct {
	// ModelPath is the classifier artifact. PRICESHEET_MODEL_PATH.
	ModelPath string
	// MaxFeatures caps the n-gram vocabulary. MODEL_MAX_FEATURES.
	MaxFeatures int
}

// HeaderConfig holds header-row detection thresholds.
type HeaderConfig struct {
	ScanRows      int // HEADER_SCAN_ROWS
	MinScore      int // HEADER_MIN_SCORE
	LongCellChars int // HEADER_LONG_CELL_CHARS
}

// ExtractConfig holds record validity settings.
type ExtractConfig struct {
	// StockMinUnits drops non-keg records with less stock. STOCK_MIN_UNITS.
	StockMinUnits int
}

// LearnConfig holds adaptive learning settings.
type LearnConfig struct {
	Auto       bool // LEARN_AUTO
	MinSamples int  // LEARN_MIN_SAMPLES
	MaxSamples int  // LEARN_MAX_SAMPLES
	// JournalPath is the SQLite retrain journal; empty disables it.
	// PRICESHEET_JOURNAL_PATH.
	JournalPath string
}

// ParseConfig holds file processing settings.
type ParseConfig struct {
	CacheSize   int           // PARSE_CACHE_SIZE
	Concurrency int           // PARSE_CONCURRENCY
	Timeout     time.Duration // PARSE_TIMEOUT
	MaxFileSize int64         // PARSE_MAX_FILE_SIZE, bytes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error, disabled. LOG_LEVEL.
	Level string
	// Format is console or json. LOG_FORMAT.
	Format string
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			ModelPath:   "models/column_classifier.gob",
			MaxFeatures: 500,
		},
		Header: HeaderConfig{
			ScanRows:      20,
			MinScore:      20,
			LongCellChars: 50,
		},
		Extract: ExtractConfig{StockMinUnits: 10},
		Learn: LearnConfig{
			Auto:       true,
			MinSamples: 5,
			MaxSamples: 5000,
		},
		Parse: ParseConfig{
			CacheSize:   10,
			Concurrency: 4,
			Timeout:     2 * time.Minute,
			MaxFileSize: 50 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
