package pricesheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the input is neither an xlsx workbook nor a csv file.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// ErrFileTooLarge indicates the input exceeds Options.MaxFileSize.
var ErrFileTooLarge = errors.New("file too large")

// Extraction components reported by ExtractionError.
const (
	ComponentOpen = "open"
	ComponentRead = "read"
)

// ExtractionError represents a file-level failure during parsing.
type ExtractionError struct {
	File      string
	SheetName string
	Component string // "open", "read"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error in %q (%s): %v", e.File, e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in %q sheet %q (%s): %v", e.File, e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(file, sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		File:      file,
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
