package parser

import (
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// row builds a grid row: strings become text cells, numbers become number
// cells and nil is an empty cell.
func row(values ...any) models.Row {
	r := make(models.Row, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case nil:
			r[i] = models.Empty()
		case string:
			r[i] = models.Text(v)
		case int:
			r[i] = models.Number(float64(v))
		case float64:
			r[i] = models.Number(v)
		default:
			panic("unsupported cell value")
		}
	}
	return r
}

func grid(rows ...models.Row) *models.Grid {
	return &models.Grid{SheetName: "Sheet1", Rows: rows}
}
