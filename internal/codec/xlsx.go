package codec

import (
	"bytes"
	"fmt"
	"strconv"

	"sheet-filter/internal/model"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the sheet written by EncodeXLSX
const DefaultSheetName = "FilteredData"

// readXLSX loads the first sheet of an xlsx buffer into a typed grid
func readXLSX(raw []byte) ([][]Cell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnrecognized)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	grid := make([][]Cell, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, text := range row {
			if text == "" {
				cells[c] = model.Null
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell %s: %w", name, err)
			}
			cells[c] = typedValue(typ, text)
		}
		grid[r] = cells
	}
	return grid, nil
}

// typedValue maps a raw cell string to a Value using the stored cell type.
// Numeric cells are usually written without a type attribute, so an unset
// type that parses as a number is a number.
func typedValue(typ excelize.CellType, text string) model.Value {
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, err := strconv.ParseFloat(text, 64); err == nil {
			return model.Number(n)
		}
	case excelize.CellTypeBool:
		if text == "1" {
			return model.String("TRUE")
		}
		return model.String("FALSE")
	}
	return model.String(text)
}

// WriteSheet writes a header row of cols followed by one row per record.
// Nulls become empty cells and numbers stay numeric.
func WriteSheet(f *excelize.File, sheet string, cols []string, rows []model.Record) error {
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range rows {
		line := make([]interface{}, len(cols))
		for j, c := range cols {
			v, _ := rec.Get(c)
			switch v.Kind() {
			case model.KindNumber:
				line[j] = v.Num()
			case model.KindString:
				line[j] = v.Text()
			default:
				line[j] = nil
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}

// NewWorkbook creates a workbook whose only sheet is named sheet
func NewWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	return f, nil
}

// EncodeXLSX serializes rows into an xlsx workbook with a single sheet
func EncodeXLSX(rows []model.Record) ([]byte, error) {
	f, err := NewWorkbook(DefaultSheetName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := WriteSheet(f, DefaultSheetName, model.Columns(rows), rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
