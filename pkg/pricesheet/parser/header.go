package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// HeaderPolicy tunes header-row detection.
type HeaderPolicy struct {
	// ScanRows is how many leading rows are considered.
	ScanRows int
	// MinScore is the score a row needs to be accepted as the header.
	MinScore int
	// LongCellChars is the length above which a cell reads as free text.
	LongCellChars int
}

// DefaultHeaderPolicy returns the default detection thresholds. A single
// name and price pair scores exactly MinScore.
func DefaultHeaderPolicy() HeaderPolicy {
	return HeaderPolicy{
		ScanRows:      20,
		MinScore:      20,
		LongCellChars: 50,
	}
}

// Keyword weights. Name and price need an exact match; brewery and volume
// also accept substrings.
const (
	scoreName    = 10
	scorePrice   = 10
	scoreStyle   = 5
	scoreVolume  = 5
	scoreBrewery = 5
)

var (
	headerNameWords    = wordSet("название", "наименование", "name", "продукт", "товар")
	headerPriceWords   = wordSet("цена", "price", "стоимость")
	headerStyleWords   = wordSet("стиль", "style", "тип")
	headerBreweryWords = wordSet("пивоварня", "brewery", "производитель")
	headerVolumeSubs   = []string{"объем", "тара", "volume", "фасовк"}
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// scoreCell returns the keyword score of one lowercased, trimmed cell.
func scoreCell(s string) int {
	score := 0
	if _, ok := headerNameWords[s]; ok {
		score += scoreName
	}
	if _, ok := headerPriceWords[s]; ok {
		score += scorePrice
	}
	if _, ok := headerStyleWords[s]; ok {
		score += scoreStyle
	}
	for _, sub := range headerVolumeSubs {
		if strings.Contains(s, sub) {
			score += scoreVolume
			break
		}
	}
	if _, ok := headerBreweryWords[s]; ok || strings.Contains(s, "пивоварн") {
		score += scoreBrewery
	}
	return score
}

// ScoreRow returns the header score of a row. ok is false when the row is
// dominated by long free-text cells: more than half of its non-empty cells
// exceed longCellChars characters.
func ScoreRow(row models.Row, longCellChars int) (score int, ok bool) {
	nonEmpty, long := 0, 0
	for _, c := range row {
		if c.IsEmpty() {
			continue
		}
		s := strings.TrimSpace(c.String())
		nonEmpty++
		if utf8.RuneCountInString(s) > longCellChars {
			long++
		}
		score += scoreCell(strings.ToLower(s))
	}
	if nonEmpty == 0 {
		return 0, false
	}
	return score, long*2 <= nonEmpty
}

// LocateHeader picks the header row among the first p.ScanRows rows. The
// highest-scoring row at or above p.MinScore wins and ties keep the topmost
// row. When no row qualifies, row 0 is the header and Detected is false.
func LocateHeader(g *models.Grid, p HeaderPolicy) models.HeaderAssignment {
	best, bestScore := -1, 0
	for i := 0; i < len(g.Rows) && i < p.ScanRows; i++ {
		score, ok := ScoreRow(g.Rows[i], p.LongCellChars)
		if !ok || score < p.MinScore {
			continue
		}
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}

	h := models.HeaderAssignment{Row: 0}
	if best >= 0 {
		h.Row, h.Detected, h.Score = best, true, bestScore
	} else if len(g.Rows) > 0 {
		h.Score, _ = ScoreRow(g.Rows[0], p.LongCellChars)
	}
	h.Headers = headerLabels(g, h.Row)
	return h
}

// headerLabels returns the trimmed text of every header cell across the
// grid width. Blank and non-text cells are "".
func headerLabels(g *models.Grid, row int) []string {
	width := g.Width()
	headers := make([]string, width)
	for col := 0; col < width; col++ {
		c := g.Cell(row, col)
		if c.Kind == models.CellText {
			headers[col] = strings.TrimSpace(c.Text)
		}
	}
	return headers
}
