package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ProductRecord is one normalized price-list position.
// JSON keys are the canonical Russian field names consumed by report and
// order builders.
type ProductRecord struct {
	// Brewery is the producer, from a brewery column or the filename.
	Brewery *string `json:"пивоварня"`
	// Name is the product name (2..200 characters).
	Name string `json:"название"`
	// Style is the beer style, from a style column or derived from Name.
	Style *string `json:"стиль"`
	// Volume is the normalized container, e.g. "0.5 л" or "30 л (кега)".
	Volume *string `json:"объем"`
	// Price is the normalized price, "<number> руб.".
	Price *string `json:"цена"`
	// Stock is the availability, a count or a qualitative tag.
	Stock Stock `json:"остаток"`
	// OrderQuantity is the requested quantity (0 when none).
	OrderQuantity int `json:"заказ"`
	// RowIndex is the 1-based spreadsheet row the record came from.
	RowIndex int `json:"_row_index"`
	// SheetIndex is the 0-based position of the source sheet in the workbook.
	SheetIndex int `json:"_sheet_index"`
}

// IsKeg reports whether the record's volume designates a keg.
func (p *ProductRecord) IsKeg() bool {
	return p.Volume != nil && strings.Contains(strings.ToLower(*p.Volume), "кег")
}

// Clone returns a deep copy of the record.
func (p ProductRecord) Clone() ProductRecord {
	c := p
	c.Brewery = cloneString(p.Brewery)
	c.Style = cloneString(p.Style)
	c.Volume = cloneString(p.Volume)
	c.Price = cloneString(p.Price)
	if p.Stock.Count != nil {
		n := *p.Stock.Count
		c.Stock.Count = &n
	}
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Stock is either an integer count or a lowercase availability tag
// ("много", "мало", ...). The zero value means unknown.
type Stock struct {
	// Count is the unit count when the cell was numeric.
	Count *int
	// Tag is the lowercase text when the cell was not numeric.
	Tag string
}

// StockCount returns a numeric stock.
func StockCount(n int) Stock { return Stock{Count: &n} }

// StockTag returns a qualitative stock.
func StockTag(tag string) Stock { return Stock{Tag: tag} }

// IsSet reports whether any stock information is present.
func (s Stock) IsSet() bool { return s.Count != nil || s.Tag != "" }

// String renders the stock for display.
func (s Stock) String() string {
	switch {
	case s.Count != nil:
		return fmt.Sprintf("%d", *s.Count)
	default:
		return s.Tag
	}
}

// MarshalJSON renders a count as a number, a tag as a string and unknown as null.
func (s Stock) MarshalJSON() ([]byte, error) {
	switch {
	case s.Count != nil:
		return json.Marshal(*s.Count)
	case s.Tag != "":
		return json.Marshal(s.Tag)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, a string or null.
func (s *Stock) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Stock{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &s.Tag)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("stock: %w", err)
	}
	n := int(f)
	s.Count = &n
	return nil
}
