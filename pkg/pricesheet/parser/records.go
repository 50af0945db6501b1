package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/fields"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// ExtractPolicy tunes record validity.
type ExtractPolicy struct {
	// StockMinUnits drops non-keg records whose numeric stock is below it.
	// Zero disables the filter.
	StockMinUnits int
}

// DefaultExtractPolicy returns the default validity policy.
func DefaultExtractPolicy() ExtractPolicy {
	return ExtractPolicy{StockMinUnits: 10}
}

const (
	minNameLen = 2
	maxNameLen = 200
)

// statusNames are cell values that sit in a name column but are not products.
var statusNames = map[string]struct{}{
	"много": {}, "мало": {}, "нет в наличии": {}, "достаточно": {},
	"н/д": {}, "нет": {}, "ё": {},
}

// boilerplateKeywords mark notice lines and section headers.
var boilerplateKeywords = []string{
	"уважаемые партнеры",
	"внимание",
	"примечание",
	"этикетка",
	"честный знак",
	"введением",
	"отгрузка",
	"упаковке",
	"кратно упаковке",
	"two peaks brew lab",
	"сидры incider",
	"otherlab",
	"платиновая коллекция",
	"специальные сорта и коллаб",
	"бокалы и мерч",
	"крафт фасовка",
	"крафт розлив",
	"классическое розлив",
	"классическое фасовка",
}

// columnPlan holds the authoritative columns per field, in column order.
type columnPlan struct {
	name    []int
	brewery []int
	style   []int
	volume  []int
	price   []int
	order   []int
	stock   []int
}

// planColumns resolves duplicate roles. An exactly named style or price
// column shadows other columns of the same role; order columns are never
// read as volume. Stock columns are picked by header keyword.
func planColumns(headers []string, roles models.ColumnRoles) columnPlan {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	p := columnPlan{
		name:    roles.Columns(models.RoleName),
		brewery: roles.Columns(models.RoleBrewery),
		style:   preferExact(roles.Columns(models.RoleStyle), lower, "стиль", "style"),
		price:   preferExact(roles.Columns(models.RolePrice), lower, "цена", "price", "стоимость"),
		order:   roles.Columns(models.RoleOrderQuantity),
	}
	for _, col := range roles.Columns(models.RoleVolume) {
		if col < len(lower) && (strings.Contains(lower[col], "заказ") || strings.Contains(lower[col], "order")) {
			continue
		}
		p.volume = append(p.volume, col)
	}
	for col, h := range headers {
		if fields.IsStockHeader(h) {
			p.stock = append(p.stock, col)
		}
	}
	return p
}

func preferExact(cols []int, lower []string, exact ...string) []int {
	var matched []int
	for _, col := range cols {
		if col >= len(lower) {
			continue
		}
		for _, e := range exact {
			if lower[col] == e {
				matched = append(matched, col)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}
	return cols
}

// firstCell returns the first non-empty cell of row among cols.
func firstCell(row models.Row, cols []int) (models.Cell, bool) {
	for _, col := range cols {
		if col < len(row) && !row[col].IsEmpty() {
			return row[col], true
		}
	}
	return models.Empty(), false
}

// ExtractRecords walks the rows below the header and returns one record per
// valid row. brewery is the default producer, overridden per row by a
// brewery column. A row without a name whose volume mentions a keg takes the
// name of the last named row.
func ExtractRecords(
	g *models.Grid,
	h models.HeaderAssignment,
	roles models.ColumnRoles,
	brewery string,
	sheetIndex int,
	policy ExtractPolicy,
) []models.ProductRecord {
	plan := planColumns(h.Headers, roles)

	var records []models.ProductRecord
	lastName := ""
	for i := h.Row + 1; i < len(g.Rows); i++ {
		row := g.Rows[i]
		if row.IsBlank() {
			continue
		}

		rec := models.ProductRecord{
			Brewery:    models.StringPtr(brewery),
			RowIndex:   models.SpreadsheetRow(i),
			SheetIndex: sheetIndex,
		}

		if c, ok := firstCell(row, plan.name); ok {
			rec.Name = fields.CleanText(c.String())
		}
		if rec.Name != "" {
			lastName = rec.Name
		} else if lastName != "" {
			if c, ok := firstCell(row, plan.volume); ok && fields.MentionsKeg(c.String()) {
				rec.Name = lastName
			}
		}

		if c, ok := firstCell(row, plan.brewery); ok {
			if b := fields.CleanText(c.String()); b != "" {
				rec.Brewery = &b
			}
		}

		if c, ok := firstCell(row, plan.style); ok {
			rec.Style = models.StringPtr(fields.CleanText(c.String()))
		}
		if rec.Style == nil && rec.Name != "" {
			if s, ok := fields.ExtractStyle(rec.Name); ok {
				rec.Style = &s
			}
		}

		// Volume keeps the whole cell text; CleanText would cut multi-line cells.
		if c, ok := firstCell(row, plan.volume); ok {
			v, ok := fields.ExtractVolume(c)
			if !ok {
				v = strings.TrimSpace(c.String())
			}
			rec.Volume = models.StringPtr(v)
		}
		if rec.Volume == nil && rec.Name != "" {
			if v, ok := fields.ExtractVolumeText(rec.Name); ok {
				rec.Volume = &v
			}
		}

		if c, ok := firstCell(row, plan.price); ok {
			if p, ok := fields.ExtractPrice(fields.CleanText(c.String())); ok {
				rec.Price = &p
			}
		}

		if c, ok := firstCell(row, plan.stock); ok {
			rec.Stock = fields.ParseStock(c)
		}
		if c, ok := firstCell(row, plan.order); ok {
			rec.OrderQuantity = fields.ParseQuantity(c)
		}

		if reason := rejectReason(&rec, policy); reason != "" {
			log.Debug().
				Str("sheet", g.SheetName).
				Int("row", rec.RowIndex).
				Str("name", rec.Name).
				Str("reason", reason).
				Msg("Skipping row")
			continue
		}
		records = append(records, rec)
	}
	return records
}

// rejectReason returns why rec is not a product, or "" when it is.
func rejectReason(rec *models.ProductRecord, policy ExtractPolicy) string {
	name := strings.TrimSpace(rec.Name)
	n := utf8.RuneCountInString(name)
	switch {
	case n < minNameLen:
		return "name too short"
	case n > maxNameLen:
		return "name too long"
	}

	lower := strings.ToLower(name)
	if _, ok := statusNames[lower]; ok {
		return "status word"
	}
	for _, kw := range boilerplateKeywords {
		if strings.Contains(lower, kw) {
			return "notice or section header"
		}
	}

	if rec.Price == nil || !strings.ContainsAny(*rec.Price, "0123456789") {
		return "no price"
	}

	if rec.Stock.Count != nil && !rec.IsKeg() && *rec.Stock.Count < policy.StockMinUnits {
		return "low stock"
	}
	return ""
}
