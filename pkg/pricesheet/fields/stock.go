package fields

import (
	"math"
	"strings"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// stockHeaderKeywords mark availability columns. These columns stay outside
// the role table.
var stockHeaderKeywords = []string{"остаток", "остатк", "наличи", "stock", "availability"}

// IsStockHeader reports whether a column header names stock or availability.
func IsStockHeader(header string) bool {
	return containsAny(strings.ToLower(header), stockHeaderKeywords...)
}

// maxUnits bounds counts read from cells; larger values are not stock.
const maxUnits = 1 << 31

// units converts a cell number to a whole count.
func units(f float64) (int, bool) {
	if math.IsNaN(f) || math.Abs(f) >= maxUnits {
		return 0, false
	}
	return int(f), true
}

// ParseStock reads a stock cell: numbers become counts, anything else is
// kept as a lowercase tag.
func ParseStock(c models.Cell) models.Stock {
	if c.IsEmpty() {
		return models.Stock{}
	}
	if c.Kind == models.CellNumber {
		if n, ok := units(c.Num); ok {
			return models.StockCount(n)
		}
	}
	s := strings.TrimSpace(c.String())
	if f, ok := models.ParseNumber(s); ok {
		if n, ok := units(f); ok {
			return models.StockCount(n)
		}
	}
	return models.StockTag(strings.ToLower(s))
}

// ParseQuantity reads an order-quantity cell, returning 0 when the cell is
// not numeric.
func ParseQuantity(c models.Cell) int {
	f := c.Num
	switch c.Kind {
	case models.CellNumber:
	case models.CellText:
		var ok bool
		if f, ok = models.ParseNumber(c.Text); !ok {
			return 0
		}
	default:
		return 0
	}
	n, _ := units(f)
	return n
}
