// Package parser turns raw workbook sheets into product records.
//
// A sheet is read into a models.Grid, its header row is located with
// LocateHeader, and ExtractRecords walks the rows below it using the column
// roles assigned by the classifier.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat indicates a file type that cannot be read.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// Format is a readable spreadsheet container.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat maps a file name to its format by extension.
// Legacy binary .xls workbooks are not supported.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
	}
}

// ReadWorkbook reads every sheet of the workbook in r. name selects the
// format by extension. Sheets are returned in workbook order; a sheet that
// fails to read is returned as an empty grid so sheet positions stay stable.
func ReadWorkbook(name string, r io.Reader) ([]models.Grid, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	if format == FormatCSV {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		g, err := ReadCSV(name, data)
		if err != nil {
			return nil, err
		}
		return []models.Grid{g}, nil
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	grids := make([]models.Grid, 0, len(sheetList))
	for _, sheetName := range sheetList {
		g, err := ReadSheet(f, sheetName)
		if err != nil {
			log.Warn().Err(err).Str("sheet", sheetName).Msg("Failed to read sheet; treating as empty")
			g = models.Grid{SheetName: sheetName}
		}
		grids = append(grids, g)
	}
	return grids, nil
}

// ReadSheet reads the cells of one sheet into a grid. Cell values are read
// raw so numbers keep full precision; interior empty rows are kept. Cells
// stored as strings stay text even when they look numeric.
func ReadSheet(f *excelize.File, sheetName string) (models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Grid{}, err
	}

	g := models.Grid{SheetName: sheetName, Rows: make([]models.Row, len(rows))}
	for rowIdx, row := range rows {
		cells := make(models.Row, len(row))
		for colIdx, cellValue := range row {
			cells[colIdx] = readCell(f, sheetName, colIdx+1, rowIdx+1, cellValue)
		}
		g.Rows[rowIdx] = cells
	}
	return g, nil
}

// readCell types a raw value by the cell type stored in the workbook.
func readCell(f *excelize.File, sheetName string, col, row int, raw string) models.Cell {
	if strings.TrimSpace(raw) == "" {
		return models.Empty()
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.ParseCell(raw)
	}
	cellType, err := f.GetCellType(sheetName, ref)
	if err != nil {
		return models.ParseCell(raw)
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return models.Text(raw)
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return models.Text("TRUE")
		}
		return models.Text("FALSE")
	default:
		return models.ParseCell(raw)
	}
}
