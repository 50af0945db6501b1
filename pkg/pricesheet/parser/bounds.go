package parser

import (
	"fmt"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"github.com/xuri/excelize/v2"
)

// Bounds is the 0-based inclusive bounding box of non-empty cells.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Range renders the bounds in spreadsheet notation, e.g. "A1:D10".
func (b Bounds) Range() string {
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DataBounds finds the bounding box of non-empty cells.
// It returns false for a grid with no data.
func DataBounds(g *models.Grid) (Bounds, bool) {
	b := Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range g.Rows {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if b.MaxRow < 0 || rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if b.MaxCol < 0 || colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b, b.MinRow >= 0
}

// CountNonEmpty counts non-empty cells within bounds.
func CountNonEmpty(g *models.Grid, b Bounds) int {
	count := 0
	for rowIdx := b.MinRow; rowIdx <= b.MaxRow && rowIdx < len(g.Rows); rowIdx++ {
		if rowIdx < 0 {
			continue
		}
		row := g.Rows[rowIdx]
		for colIdx := b.MinCol; colIdx <= b.MaxCol && colIdx < len(row); colIdx++ {
			if colIdx >= 0 && !row[colIdx].IsEmpty() {
				count++
			}
		}
	}
	return count
}
