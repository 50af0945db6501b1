package parser

import (
	"testing"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFНазвание;Объем;Цена\nBlack Magic IPA;0,5;250\n\n\"Porter; dark\";0.33;190\n")

	g, err := ReadCSV("afbrew_price.csv", data)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if g.SheetName != "afbrew_price" {
		t.Errorf("SheetName = %q, expected %q", g.SheetName, "afbrew_price")
	}
	if len(g.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(g.Rows))
	}
	if c := g.Cell(0, 0); c.String() != "Название" {
		t.Errorf("header cell = %q, expected %q", c.String(), "Название")
	}
	if c := g.Cell(1, 2); c.Kind != models.CellNumber || c.Num != 250 {
		t.Errorf("price cell = %v %q, expected number 250", c.Kind, c.String())
	}
	if c := g.Cell(1, 1); c.Kind != models.CellText || c.Text != "0,5" {
		t.Errorf("volume cell = %v %q, expected text 0,5", c.Kind, c.String())
	}
	if c := g.Cell(2, 0); c.String() != "Porter; dark" {
		t.Errorf("quoted cell = %q, expected %q", c.String(), "Porter; dark")
	}
}

func TestReadCSVLegacyEncodings(t *testing.T) {
	source := "Наименование,Цена\nТёмное пиво,180\n"
	for _, enc := range []*charmap.Charmap{charmap.Windows1251, charmap.KOI8R} {
		encoded, err := enc.NewEncoder().Bytes([]byte(source))
		if err != nil {
			t.Fatalf("encode with %v: %v", enc, err)
		}

		g, err := ReadCSV("price.csv", encoded)
		if err != nil {
			t.Fatalf("ReadCSV(%v) failed: %v", enc, err)
		}
		if c := g.Cell(0, 0); c.String() != "Наименование" {
			t.Errorf("ReadCSV(%v) header = %q, expected %q", enc, c.String(), "Наименование")
		}
		if c := g.Cell(1, 0); c.String() != "Тёмное пиво" {
			t.Errorf("ReadCSV(%v) name = %q, expected %q", enc, c.String(), "Тёмное пиво")
		}
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
	}{
		{"a;b;c\n1,5;2;3", ';'},
		{"a,b,c", ','},
		{"a\tb\tc", '\t'},
		{"\n\n  \nname;price", ';'},
		{"single", ','},
		{"a;b,c", ';'},
	}

	for _, tt := range tests {
		if got := sniffDelimiter(tt.input); got != tt.expected {
			t.Errorf("sniffDelimiter(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
