package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// legacyEncodings are tried for CSV input that is not valid UTF-8.
// The candidate producing the most common Cyrillic lowercase letters wins.
var legacyEncodings = []encoding.Encoding{
	charmap.Windows1251,
	charmap.KOI8R,
}

const commonCyrillic = "оеаинтсрвлкмдпу"

// ReadCSV parses a delimited price list into a single grid named after the
// file. The delimiter is sniffed from the first non-empty line.
func ReadCSV(name string, data []byte) (models.Grid, error) {
	text, err := decodeText(data)
	if err != nil {
		return models.Grid{}, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	base := filepath.Base(name)
	g := models.Grid{SheetName: strings.TrimSuffix(base, filepath.Ext(base))}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Grid{}, fmt.Errorf("read %s: %w", base, err)
		}
		row := make(models.Row, len(record))
		for i, field := range record {
			row[i] = models.ParseCell(field)
		}
		g.Rows = append(g.Rows, row)
	}
	return g, nil
}

// decodeText returns data as UTF-8, stripping a byte-order mark and
// transcoding legacy Cyrillic code pages.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	best, bestScore := "", -1
	for _, enc := range legacyEncodings {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			continue
		}
		s := string(decoded)
		if score := cyrillicScore(s); score > bestScore {
			best, bestScore = s, score
		}
	}
	if bestScore < 0 {
		return "", errors.New("unknown text encoding")
	}
	return best, nil
}

func cyrillicScore(s string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(commonCyrillic, r) {
			n++
		}
	}
	return n
}

// sniffDelimiter picks the most frequent of ';', ',' and tab on the first
// non-empty line. Ties resolve in that order; ',' is the default.
func sniffDelimiter(text string) rune {
	line := ""
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best, bestCount := ',', 0
	for _, d := range []rune{';', ',', '\t'} {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
