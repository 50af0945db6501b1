package models

// Row is an ordered sequence of cells. Position i is spreadsheet column i+1.
type Row []Cell

// Grid is the raw content of one sheet. Position i is spreadsheet row i+1;
// empty interior rows are kept so row numbers survive extraction.
type Grid struct {
	// SheetName is the sheet the grid was read from.
	SheetName string
	// Rows holds the sheet rows in order.
	Rows []Row
}

// Cell returns the cell at (row, col), or an empty cell when out of range.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.Rows) {
		return Empty()
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return Empty()
	}
	return r[col]
}

// Width returns the number of columns of the widest row.
func (g *Grid) Width() int {
	w := 0
	for _, r := range g.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// HeaderAssignment binds a located header row to its column labels.
type HeaderAssignment struct {
	// Row is the 0-based grid index of the header row.
	Row int `json:"row"`
	// Detected is false when no row reached the score threshold and row 0
	// was taken by default.
	Detected bool `json:"detected"`
	// Score is the keyword score of the chosen row.
	Score int `json:"score"`
	// Headers holds the trimmed header text for every column position.
	// Blank and non-text header cells are kept as "".
	Headers []string `json:"headers"`
}

// SpreadsheetRow converts a 0-based grid index to a 1-based spreadsheet row number.
func SpreadsheetRow(gridIndex int) int {
	return gridIndex + 1
}
