package fields

import (
	"regexp"
	"strings"
)

var priceRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)

// ExtractPrice renders the first decimal number in text as "<value> руб.".
// A comma decimal separator is normalized to a dot.
func ExtractPrice(text string) (string, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], ",", ".") + " руб.", true
}
