// Package fields parses single cell values into normalized product fields.
//
// Every extractor is a pure function. Un-parseable input yields "no value"
// (an empty string with ok=false) rather than an error.
package fields

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText trims s, keeps only its first line and collapses runs of
// whitespace to a single space. Multi-line cells carry the product name on
// the first line and a description after it.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
