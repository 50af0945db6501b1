package order

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/parser"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Банка")
	f.SetCellValue("Банка", "A1", "Прайс на текущую неделю")
	f.SetCellValue("Банка", "A2", "Название")
	f.SetCellValue("Банка", "B2", "Цена")
	f.SetCellValue("Банка", "C2", "Остаток")
	f.SetCellValue("Банка", "A3", "IPA")
	f.SetCellValue("Банка", "B3", 250)
	f.SetCellValue("Банка", "A4", "Porter")
	f.SetCellValue("Банка", "B4", 190)

	if _, err := f.NewSheet("Кеги"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Кеги", "A1", "Наименование")
	f.SetCellValue("Кеги", "B1", "Заказ, шт")
	f.SetCellValue("Кеги", "C1", "Стоимость")
	f.SetCellValue("Кеги", "A2", "Lager keg")
	f.SetCellValue("Кеги", "C2", 5000)

	if _, err := f.NewSheet("Прочее"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Прочее", "A1", "Название")
	f.SetCellValue("Прочее", "B1", "Цена")

	path := filepath.Join(t.TempDir(), "price.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s!%s) failed: %v", sheet, cell, err)
	}
	return v
}

func TestApplyFile(t *testing.T) {
	src := buildWorkbook(t)
	dst := filepath.Join(t.TempDir(), "order.xlsx")
	records := []models.ProductRecord{
		{Name: "IPA", OrderQuantity: 6, RowIndex: 3, SheetIndex: 0},
		{Name: "Porter", OrderQuantity: 0, RowIndex: 4, SheetIndex: 0},
		{Name: "Ghost", OrderQuantity: 2, RowIndex: 40, SheetIndex: 0},
		{Name: "Lager keg", OrderQuantity: 1, RowIndex: 2, SheetIndex: 1},
		{Name: "Lost", OrderQuantity: 3, RowIndex: 2, SheetIndex: 9},
	}

	res, err := ApplyFile(src, dst, records, DefaultOptions())
	if err != nil {
		t.Fatalf("ApplyFile failed: %v", err)
	}
	if res.Written != 2 || res.Skipped != 2 {
		t.Errorf("Apply = %d written, %d skipped, expected 2 and 2", res.Written, res.Skipped)
	}
	if len(res.Sheets) != 2 {
		t.Fatalf("Expected 2 sheet results, got %d", len(res.Sheets))
	}
	if s := res.Sheets[0]; s.Sheet != "Банка" || s.Column != 4 || !s.Created {
		t.Errorf("sheet result = %+v, expected created column 4 on Банка", s)
	}
	if s := res.Sheets[1]; s.Sheet != "Кеги" || s.Column != 2 || s.Created {
		t.Errorf("sheet result = %+v, expected existing column 2 on Кеги", s)
	}

	f, err := excelize.OpenFile(dst)
	if err != nil {
		t.Fatalf("Failed to open result: %v", err)
	}
	defer f.Close()

	tests := []struct {
		sheet, cell, expected string
	}{
		{"Банка", "D2", "Заказ"},
		{"Банка", "D3", "6"},
		{"Банка", "D4", ""},
		{"Банка", "D1", ""},
		{"Кеги", "B1", "Заказ, шт"},
		{"Кеги", "B2", "1"},
		{"Прочее", "C1", ""},
		{"Банка", "A3", "IPA"},
	}
	for _, tt := range tests {
		if got := cellValue(t, f, tt.sheet, tt.cell); got != tt.expected {
			t.Errorf("%s!%s = %q, expected %q", tt.sheet, tt.cell, got, tt.expected)
		}
	}
	if got := cellValue(t, f, "Банка", "D40"); got != "" {
		t.Errorf("row outside the sheet was written: %q", got)
	}
}

func TestApplyHeaderlessSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "IPA")
	f.SetCellValue("Sheet1", "B1", 250)
	f.SetCellValue("Sheet1", "A2", "Porter")
	f.SetCellValue("Sheet1", "B2", 190)

	res, err := Apply(f, []models.ProductRecord{{Name: "Porter", OrderQuantity: 4, RowIndex: 2}}, DefaultOptions())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if res.Written != 1 {
		t.Errorf("Apply wrote %d cells, expected 1", res.Written)
	}
	if got := cellValue(t, f, "Sheet1", "C1"); got != "Заказ" {
		t.Errorf("Sheet1!C1 = %q, expected header on row 1", got)
	}
	if got := cellValue(t, f, "Sheet1", "C2"); got != "4" {
		t.Errorf("Sheet1!C2 = %q, expected 4", got)
	}
}

func TestApplyFileRejectsCSV(t *testing.T) {
	_, err := ApplyFile("price.csv", "out.xlsx", nil, DefaultOptions())
	if !errors.Is(err, parser.ErrUnsupportedFormat) {
		t.Errorf("ApplyFile(csv) = %v, expected ErrUnsupportedFormat", err)
	}
}
