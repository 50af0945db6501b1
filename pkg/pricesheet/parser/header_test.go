package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

var banner = "Уважаемые партнеры! Обращаем ваше внимание на изменение цен с первого числа"

func TestLocateHeaderAfterBanner(t *testing.T) {
	g := grid(
		row(banner),
		row(nil),
		row("Название", nil, "Цена", 12),
		row("IPA", nil, 250),
	)

	h := LocateHeader(g, DefaultHeaderPolicy())
	expected := models.HeaderAssignment{
		Row:      2,
		Detected: true,
		Score:    20,
		Headers:  []string{"Название", "", "Цена", ""},
	}
	if diff := cmp.Diff(expected, h); diff != "" {
		t.Errorf("LocateHeader mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateHeaderHeaderless(t *testing.T) {
	g := grid(
		row("IPA", 250),
		row("Porter", 190),
	)

	h := LocateHeader(g, DefaultHeaderPolicy())
	if h.Row != 0 || h.Detected {
		t.Errorf("LocateHeader = row %d detected %v, expected row 0 undetected", h.Row, h.Detected)
	}
	if diff := cmp.Diff([]string{"IPA", ""}, h.Headers); diff != "" {
		t.Errorf("Headers mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateHeaderEmptyGrid(t *testing.T) {
	h := LocateHeader(grid(), DefaultHeaderPolicy())
	if h.Row != 0 || h.Detected || len(h.Headers) != 0 {
		t.Errorf("LocateHeader(empty) = %+v, expected zero assignment", h)
	}
}

func TestLocateHeaderPrefersHigherScoreThenTopmost(t *testing.T) {
	g := grid(
		row("Название", "Цена"),
		row("Наименование", "Price"),
		row("Название", "Стиль", "Цена"),
		row("Название", "Стиль", "Цена"),
	)
	if h := LocateHeader(g, DefaultHeaderPolicy()); h.Row != 2 || h.Score != 25 {
		t.Errorf("LocateHeader = row %d score %d, expected row 2 score 25", h.Row, h.Score)
	}

	g = grid(
		row("Название", "Цена"),
		row("Наименование", "Price"),
	)
	if h := LocateHeader(g, DefaultHeaderPolicy()); h.Row != 0 {
		t.Errorf("LocateHeader tie = row %d, expected row 0", h.Row)
	}
}

func TestLocateHeaderScanLimit(t *testing.T) {
	rows := make([]models.Row, 0, 30)
	for i := 0; i < 25; i++ {
		rows = append(rows, row("позиция", i))
	}
	rows = append(rows, row("Название", "Цена"))
	g := grid(rows...)

	if h := LocateHeader(g, DefaultHeaderPolicy()); h.Detected {
		t.Errorf("LocateHeader found row %d beyond scan limit", h.Row)
	}

	p := DefaultHeaderPolicy()
	p.ScanRows = 30
	if h := LocateHeader(g, p); !h.Detected || h.Row != 25 {
		t.Errorf("LocateHeader with wider scan = row %d detected %v, expected row 25", h.Row, h.Detected)
	}
}

func TestScoreRow(t *testing.T) {
	long := strings.Repeat("описание ", 7)
	tests := []struct {
		name  string
		row   models.Row
		score int
		ok    bool
	}{
		{"name and price", row("Название", "Цена"), 20, true},
		{"case and spaces", row("  НАИМЕНОВАНИЕ ", "PRICE"), 20, true},
		{"substring name does not count", row("Название пива", "Цена"), 10, true},
		{"volume and brewery substrings", row("Объем, л", "Наименование пивоварни"), 10, true},
		{"style", row("Тип", "Style"), 10, true},
		{"price with numbers", row("Цена", 100, 200), 10, true},
		{"half long is kept", row("Название", "Цена", long, long), 20, true},
		{"majority long is rejected", row("Название", "Цена", long, long, long), 20, false},
		{"blank", row(nil, nil), 0, false},
	}

	for _, tt := range tests {
		score, ok := ScoreRow(tt.row, 50)
		if score != tt.score || ok != tt.ok {
			t.Errorf("ScoreRow(%s) = (%d, %v), expected (%d, %v)", tt.name, score, ok, tt.score, tt.ok)
		}
	}
}

func TestLocateHeaderRejectsFreeTextRow(t *testing.T) {
	long := strings.Repeat("x", 60)
	g := grid(
		row("Название", "Цена", long, long, long),
		row("Название", "Цена"),
	)
	if h := LocateHeader(g, DefaultHeaderPolicy()); h.Row != 1 {
		t.Errorf("LocateHeader = row %d, expected row 1", h.Row)
	}
}
