// Package order writes selected order quantities back into the supplier's
// original workbook.
package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/parser"
	"github.com/xuri/excelize/v2"
)

// Options configures write-back.
type Options struct {
	// Header locates the header row the same way parsing does.
	Header parser.HeaderPolicy
	// ColumnTitle is the header written when a sheet has no order column.
	ColumnTitle string
}

// DefaultOptions returns default write-back options.
func DefaultOptions() Options {
	return Options{
		Header:      parser.DefaultHeaderPolicy(),
		ColumnTitle: "Заказ",
	}
}

// SheetResult reports the write-back of one sheet.
type SheetResult struct {
	Sheet string `json:"sheet"`
	// Column is the 1-based order column.
	Column int `json:"column"`
	// Created is true when the order column was added.
	Created bool `json:"created"`
	Written int  `json:"written"`
	Skipped int  `json:"skipped"`
}

// Result summarizes a write-back.
type Result struct {
	Sheets  []SheetResult `json:"sheets"`
	Written int           `json:"written"`
	// Skipped counts records whose sheet or row does not exist.
	Skipped int `json:"skipped"`
}

// Apply writes the order quantity of every record with a positive quantity
// into f at its sheet and row. Sheets without such records are untouched.
func Apply(f *excelize.File, records []models.ProductRecord, opts Options) (Result, error) {
	bySheet := make(map[int][]models.ProductRecord)
	for _, r := range records {
		if r.OrderQuantity > 0 {
			bySheet[r.SheetIndex] = append(bySheet[r.SheetIndex], r)
		}
	}
	indexes := make([]int, 0, len(bySheet))
	for idx := range bySheet {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var res Result
	sheetList := f.GetSheetList()
	for _, idx := range indexes {
		recs := bySheet[idx]
		if idx < 0 || idx >= len(sheetList) {
			log.Warn().Int("sheet_index", idx).Int("records", len(recs)).Msg("Order refers to a missing sheet")
			res.Skipped += len(recs)
			continue
		}
		sr, err := applySheet(f, sheetList[idx], recs, opts)
		if err != nil {
			return res, fmt.Errorf("sheet %q: %w", sheetList[idx], err)
		}
		res.Sheets = append(res.Sheets, sr)
		res.Written += sr.Written
		res.Skipped += sr.Skipped
	}
	return res, nil
}

func applySheet(f *excelize.File, sheetName string, recs []models.ProductRecord, opts Options) (SheetResult, error) {
	sr := SheetResult{Sheet: sheetName}
	g, err := parser.ReadSheet(f, sheetName)
	if err != nil {
		return sr, err
	}
	bounds, ok := parser.DataBounds(&g)
	if !ok {
		sr.Skipped = len(recs)
		return sr, nil
	}
	maxRow, maxCol := bounds.MaxRow+1, bounds.MaxCol+1

	h := parser.LocateHeader(&g, opts.Header)
	headerRow := 1
	if h.Detected {
		headerRow = models.SpreadsheetRow(h.Row)
	}

	for col, header := range h.Headers {
		lower := strings.ToLower(header)
		if strings.Contains(lower, "заказ") || strings.Contains(lower, "order") {
			sr.Column = col + 1
			break
		}
	}
	if sr.Column == 0 {
		sr.Column, sr.Created = maxCol+1, true
		cell, err := excelize.CoordinatesToCellName(sr.Column, headerRow)
		if err != nil {
			return sr, err
		}
		if err := f.SetCellValue(sheetName, cell, opts.ColumnTitle); err != nil {
			return sr, err
		}
	}

	for _, r := range recs {
		if r.RowIndex < 1 || r.RowIndex > maxRow {
			log.Debug().Str("sheet", sheetName).Int("row", r.RowIndex).Str("name", r.Name).Msg("Order row outside sheet")
			sr.Skipped++
			continue
		}
		cell, err := excelize.CoordinatesToCellName(sr.Column, r.RowIndex)
		if err != nil {
			return sr, err
		}
		if err := f.SetCellValue(sheetName, cell, r.OrderQuantity); err != nil {
			return sr, err
		}
		sr.Written++
	}

	log.Info().
		Str("sheet", sheetName).
		Int("column", sr.Column).
		Bool("created", sr.Created).
		Int("written", sr.Written).
		Msg("Wrote order quantities")
	return sr, nil
}

// ApplyFile opens the workbook at src, applies records and saves the
// result to dst. Only xlsx workbooks can be written back.
func ApplyFile(src, dst string, records []models.ProductRecord, opts Options) (Result, error) {
	format, err := parser.DetectFormat(src)
	if err != nil {
		return Result{}, err
	}
	if format != parser.FormatXLSX {
		return Result{}, fmt.Errorf("%w: write-back needs an xlsx workbook", parser.ErrUnsupportedFormat)
	}

	f, err := excelize.OpenFile(src)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	res, err := Apply(f, records, opts)
	if err != nil {
		return res, err
	}
	if err := f.SaveAs(dst); err != nil {
		return res, fmt.Errorf("save %s: %w", dst, err)
	}
	return res, nil
}
