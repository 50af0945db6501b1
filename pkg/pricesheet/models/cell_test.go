package models

import "testing"

func TestParseCell(t *testing.T) {
	tests := []struct {
		raw      string
		kind     CellKind
		expected string
	}{
		{"", CellEmpty, ""},
		{"   ", CellEmpty, ""},
		{"250", CellNumber, "250"},
		{" 0.5 ", CellNumber, "0.5"},
		{"-3", CellNumber, "-3"},
		{"1.5E-3", CellNumber, "0.0015"},
		{"0", CellNumber, "0"},
		{"0.33", CellNumber, "0.33"},
		{"0,5", CellText, "0,5"},
		{"Infinity", CellText, "Infinity"},
		{"Inf", CellText, "Inf"},
		{"-inf", CellText, "-inf"},
		{"NaN", CellText, "NaN"},
		{"nan", CellText, "nan"},
		{"007", CellText, "007"},
		{"0x1F", CellText, "0x1F"},
		{"1e400", CellText, "1e400"},
		{"2024-03-01", CellDate, "2024-03-01"},
		{"Black Magic IPA", CellText, "Black Magic IPA"},
	}
	for _, tt := range tests {
		c := ParseCell(tt.raw)
		if c.Kind != tt.kind || c.String() != tt.expected {
			t.Errorf("ParseCell(%q) = %v %q, expected %v %q", tt.raw, c.Kind, c.String(), tt.kind, tt.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"15", 15, true},
		{"+2.5", 2.5, true},
		{".5", 0.5, true},
		{"NaN", 0, false},
		{"+Inf", 0, false},
		{"0012", 0, false},
		{"много", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseNumber(%q) = %v, %v, expected %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
