// Package pricesheet parses supplier price-list spreadsheets into normalized
// product records.
package pricesheet

import (
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/parser"
)

// Options configures parsing behavior.
type Options struct {
	// Header tunes header-row detection.
	Header parser.HeaderPolicy
	// Extract tunes record validity.
	Extract parser.ExtractPolicy
	// AutoLearn specifies whether classified headers are collected as
	// training samples for SaveLearned. If nil, defaults to true.
	AutoLearn *bool
	// CacheSize is the number of parse results kept in memory (0 disables).
	CacheSize int
	// MaxFileSize rejects larger inputs with ErrFileTooLarge (0 disables).
	MaxFileSize int64
}

// DefaultOptions returns default parsing options.
func DefaultOptions() Options {
	return Options{
		Header:      parser.DefaultHeaderPolicy(),
		Extract:     parser.DefaultExtractPolicy(),
		CacheSize:   10,
		MaxFileSize: 50 << 20,
	}
}

// ShouldAutoLearn returns whether classified headers are collected.
func (o Options) ShouldAutoLearn() bool {
	if o.AutoLearn != nil {
		return *o.AutoLearn
	}
	return true
}
