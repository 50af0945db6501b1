package fields

import (
	"sort"
	"strings"
)

// BeerStyles is the style vocabulary recognized inside product names.
var BeerStyles = []string{
	"IPA", "NEIPA", "DIPA", "Imperial IPA", "Session IPA",
	"Lager", "Pilsner", "Pils",
	"Stout", "Imperial Stout", "Milk Stout", "Oatmeal Stout",
	"Porter", "Baltic Porter",
	"Ale", "Pale Ale", "APA", "Amber Ale", "Red Ale",
	"Wheat", "Weizen", "Witbier", "Hefeweizen",
	"Sour", "Gose", "Berliner Weisse",
	"Saison", "Farmhouse",
	"Barleywine",
	"Scotch Ale",
	"Brown Ale",
}

// stylesByLength is BeerStyles ordered longest first, so "Imperial Stout"
// wins over "Stout".
var stylesByLength = func() []string {
	s := append([]string(nil), BeerStyles...)
	sort.SliceStable(s, func(i, j int) bool {
		return len([]rune(s[i])) > len([]rune(s[j]))
	})
	return s
}()

// ExtractStyle returns the longest known style contained in text,
// compared case-insensitively.
func ExtractStyle(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	upper := strings.ToUpper(text)
	for _, style := range stylesByLength {
		if strings.Contains(upper, strings.ToUpper(style)) {
			return style, true
		}
	}
	return "", false
}
