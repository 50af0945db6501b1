package fields

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KnownBreweries are matched as substrings of a lowercased filename.
var KnownBreweries = []string{
	"AF Brew", "Zagovor", "Salden's", "Балтика", "Пивоваренный Дом",
	"BrewDog", "Craft Republic", "Лаборатория", "Selfmade",
}

var breweryFilenamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Za-zА-Яа-яЁё\s]+)_price`),
	regexp.MustCompile(`([A-Za-zА-Яа-яЁё\s]+)_прайс`),
	regexp.MustCompile(`price_([A-Za-zА-Яа-яЁё\s]+)`),
	regexp.MustCompile(`прайс_([A-Za-zА-Яа-яЁё\s]+)`),
}

var titleCaser = cases.Title(language.Und)

// BreweryFromFilename derives a brewery name from a price-list filename such
// as "zagovor_price_2024.xlsx" or "прайс_балтика.xlsx".
func BreweryFromFilename(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}
	name := strings.ToLower(filename)
	for _, ext := range []string{".xlsx", ".xls", ".csv"} {
		name = strings.ReplaceAll(name, ext, "")
	}

	for _, b := range KnownBreweries {
		if strings.Contains(name, strings.ToLower(b)) {
			return b, true
		}
	}
	for _, re := range breweryFilenamePatterns {
		if m := re.FindStringSubmatch(name); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				return titleCaser.String(s), true
			}
		}
	}
	return "", false
}
