// Package models defines data structures for price-list extraction.
package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	// CellEmpty is an absent or whitespace-only cell.
	CellEmpty CellKind = iota
	// CellNumber is a numeric cell.
	CellNumber
	// CellText is a free-text cell.
	CellText
	// CellDate is a cell holding a calendar date.
	CellDate
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a single raw spreadsheet value. Exactly one of the payload fields
// is meaningful, selected by Kind.
type Cell struct {
	// Kind selects the variant.
	Kind CellKind
	// Num is the value of a CellNumber.
	Num float64
	// Text is the value of a CellText (untrimmed).
	Text string
	// Date is the value of a CellDate.
	Date time.Time
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{Kind: CellEmpty} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }

// Text returns a text cell, or an empty cell for whitespace-only input.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Empty()
	}
	return Cell{Kind: CellText, Text: s}
}

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// dateLayouts are the textual date forms recognized as CellDate.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02.01.2006",
	"2.1.2006",
	"01-02-06",
}

// decimalRe matches a plain decimal literal with an optional exponent.
// Spelled-out values like "Inf" or "NaN" are not numbers.
var decimalRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

// ParseNumber reads s as a finite decimal number. Zero-padded codes such as
// "007" are not numbers.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalRe.MatchString(s) {
		return 0, false
	}
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ParseCell classifies a raw cell string into a Cell variant.
// Decimal literals become CellNumber, recognized date layouts become
// CellDate, anything else non-blank becomes CellText.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Empty()
	}
	if f, ok := ParseNumber(s); ok {
		return Number(f)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t)
		}
	}
	return Cell{Kind: CellText, Text: raw}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String renders the cell the way it reads in a sheet. Numbers use the
// shortest decimal form ("0.5", "250"), dates use ISO form.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return FormatNumber(c.Num)
	case CellText:
		return c.Text
	case CellDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// FormatNumber renders f in its shortest decimal form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
