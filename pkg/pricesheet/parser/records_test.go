package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

func str(s string) *string { return &s }

func extract(g *models.Grid, roles models.ColumnRoles, brewery string) []models.ProductRecord {
	h := LocateHeader(g, DefaultHeaderPolicy())
	return ExtractRecords(g, h, roles, brewery, 0, DefaultExtractPolicy())
}

func TestExtractRecords(t *testing.T) {
	g := grid(
		row(banner),
		row("Название", "Стиль", "Объем", "Цена", "Остаток"),
		row("Black Magic IPA\nСочный и яркий", nil, "0,5 л ж/б", 250, 20),
		row(nil, nil, nil, nil, nil),
		row("Портер", "Baltic Porter", 0.33, "190,50 руб", "много"),
	)
	roles := models.ColumnRoles{
		models.RoleName, models.RoleStyle, models.RoleVolume, models.RolePrice, models.RoleIgnore,
	}

	got := extract(g, roles, "AF Brew")
	expected := []models.ProductRecord{
		{
			Brewery:    str("AF Brew"),
			Name:       "Black Magic IPA",
			Style:      str("IPA"),
			Volume:     str("0.5 л (банка)"),
			Price:      str("250 руб."),
			Stock:      models.StockCount(20),
			RowIndex:   3,
			SheetIndex: 0,
		},
		{
			Brewery:    str("AF Brew"),
			Name:       "Портер",
			Style:      str("Baltic Porter"),
			Volume:     str("0.33 л"),
			Price:      str("190.50 руб."),
			Stock:      models.StockTag("много"),
			RowIndex:   5,
			SheetIndex: 0,
		},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("ExtractRecords mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRecordsKegContinuation(t *testing.T) {
	g := grid(
		row("Название", "Объем", "Цена"),
		row("Hazy Lager", "0.5 л", 200),
		row(nil, "30 л кега", 5400),
		row(nil, "Кега 20", 3900),
		row(nil, "0.33 л", 150),
	)
	roles := models.ColumnRoles{models.RoleName, models.RoleVolume, models.RolePrice}

	got := extract(g, roles, "")
	if len(got) != 3 {
		t.Fatalf("Expected 3 records, got %d: %+v", len(got), got)
	}
	for i, rec := range got {
		if rec.Name != "Hazy Lager" {
			t.Errorf("record %d name = %q, expected %q", i, rec.Name, "Hazy Lager")
		}
		if rec.Brewery != nil {
			t.Errorf("record %d brewery = %q, expected none", i, *rec.Brewery)
		}
	}
	if v := *got[1].Volume; v != "30 л (кега)" {
		t.Errorf("keg volume = %q, expected %q", v, "30 л (кега)")
	}
	if v := *got[2].Volume; v != "20 л (кега)" {
		t.Errorf("second keg volume = %q, expected %q", v, "20 л (кега)")
	}
	if got[1].RowIndex != 3 || got[2].RowIndex != 4 {
		t.Errorf("keg rows = %d, %d, expected 3, 4", got[1].RowIndex, got[2].RowIndex)
	}
}

func TestExtractRecordsStockFilter(t *testing.T) {
	g := grid(
		row("Название", "Объем", "Цена", "Остаток, шт"),
		row("Low Stock Lager", "0.5 л", 200, 5),
		row("Plenty Lager", "0.5 л", 200, 15),
		row("Low Keg Lager", "30 л кега", 5000, 5),
		row("Edge Lager", "0.5 л", 200, 10),
	)
	roles := models.ColumnRoles{models.RoleName, models.RoleVolume, models.RolePrice, models.RoleIgnore}

	got := extract(g, roles, "")
	var names []string
	for _, rec := range got {
		names = append(names, rec.Name)
	}
	expected := []string{"Plenty Lager", "Low Keg Lager", "Edge Lager"}
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Errorf("stock filter mismatch (-want +got):\n%s", diff)
	}

	h := LocateHeader(g, DefaultHeaderPolicy())
	all := ExtractRecords(g, h, roles, "", 0, ExtractPolicy{})
	if len(all) != 4 {
		t.Errorf("Expected 4 records with the filter disabled, got %d", len(all))
	}
}

func TestExtractRecordsValidity(t *testing.T) {
	long := make([]rune, 201)
	for i := range long {
		long[i] = 'я'
	}
	g := grid(
		row("Наименование", "Цена"),
		row("X", 100),
		row(string(long), 100),
		row("Много", 100),
		row("ВНИМАНИЕ! Отгрузка по средам", 100),
		row("Крафт розлив", 100),
		row("Без цены", nil),
		row("Цена по запросу", "договорная"),
		row("Oatmeal Stout", "от 300"),
	)
	roles := models.ColumnRoles{models.RoleName, models.RolePrice}

	got := extract(g, roles, "")
	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Oatmeal Stout" || *got[0].Price != "300 руб." || *got[0].Style != "Oatmeal Stout" {
		t.Errorf("unexpected record %+v", got[0])
	}
}

func TestExtractRecordsDuplicateRoles(t *testing.T) {
	g := grid(
		row("Название", "Пивоварня", "Цена за кег", "Цена", "Тип", "Стиль", "Объем", "Заказ"),
		row("Pale Ale One", "Salden's", 9000, 210, "Пиво", "APA", "0.5 л", 3),
	)
	roles := models.ColumnRoles{
		models.RoleName, models.RoleBrewery, models.RolePrice, models.RolePrice,
		models.RoleStyle, models.RoleStyle, models.RoleVolume, models.RoleOrderQuantity,
	}

	got := extract(g, roles, "Default Brewery")
	if len(got) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(got))
	}
	rec := got[0]
	if *rec.Price != "210 руб." {
		t.Errorf("price = %q, expected the exactly named column", *rec.Price)
	}
	if *rec.Style != "APA" {
		t.Errorf("style = %q, expected the exactly named column", *rec.Style)
	}
	if *rec.Brewery != "Salden's" {
		t.Errorf("brewery = %q, expected column value over default", *rec.Brewery)
	}
	if rec.OrderQuantity != 3 {
		t.Errorf("order quantity = %d, expected 3", rec.OrderQuantity)
	}
}

func TestPlanColumnsSkipsOrderVolume(t *testing.T) {
	headers := []string{"Объем", "Объем заказа", "Order volume"}
	roles := models.ColumnRoles{models.RoleVolume, models.RoleVolume, models.RoleVolume}

	p := planColumns(headers, roles)
	if diff := cmp.Diff([]int{0}, p.volume); diff != "" {
		t.Errorf("volume columns mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRecordsVolumeFallbacks(t *testing.T) {
	g := grid(
		row("Название", "Объем", "Цена"),
		row("Gose 0,33 банка", nil, 150),
		row("Sour Cherry", "розлив", 150),
	)
	roles := models.ColumnRoles{models.RoleName, models.RoleVolume, models.RolePrice}

	got := extract(g, roles, "")
	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	if *got[0].Volume != "0.33 л (банка)" {
		t.Errorf("volume from name = %q, expected %q", *got[0].Volume, "0.33 л (банка)")
	}
	if *got[1].Volume != "розлив" {
		t.Errorf("raw volume = %q, expected %q", *got[1].Volume, "розлив")
	}
}

func TestExtractRecordsSpelledNumbersStayText(t *testing.T) {
	data := []byte("Название;Цена;Остаток\n" +
		"Infinity;100;20\n" +
		"NaN;110;20\n" +
		"Lager;120;nan\n" +
		"007;130;20\n")
	g, err := ReadCSV("prices.csv", data)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	roles := models.ColumnRoles{models.RoleName, models.RolePrice, models.RoleIgnore}

	got := extract(&g, roles, "Zagovor")
	expected := []struct {
		name  string
		price string
		stock models.Stock
	}{
		{"Infinity", "100 руб.", models.StockCount(20)},
		{"NaN", "110 руб.", models.StockCount(20)},
		{"Lager", "120 руб.", models.StockTag("nan")},
		{"007", "130 руб.", models.StockCount(20)},
	}
	if len(got) != len(expected) {
		t.Fatalf("ExtractRecords returned %d records, expected %d: %+v", len(got), len(expected), got)
	}
	for i, e := range expected {
		r := got[i]
		if r.Name != e.name || r.Price == nil || *r.Price != e.price {
			t.Errorf("record %d = %q %v, expected %q %q", i, r.Name, r.Price, e.name, e.price)
		}
		if diff := cmp.Diff(e.stock, r.Stock); diff != "" {
			t.Errorf("record %d stock mismatch (-want +got):\n%s", i, diff)
		}
	}
}
