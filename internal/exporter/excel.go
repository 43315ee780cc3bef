package exporter

import (
	"fmt"
	"unicode/utf8"

	"sheet-filter/internal/codec"
	"sheet-filter/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 8
	maxColWidth = 60
)

// ExcelExporter writes the view into a single-sheet workbook
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Extension() string { return "xlsx" }

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Encode generates the workbook bytes
func (e *ExcelExporter) Encode(view model.View) ([]byte, error) {
	sheet := codec.DefaultSheetName
	f, err := codec.NewWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return nil, err
	}

	cols := model.Columns(view)
	if err := codec.WriteSheet(f, sheet, cols, view); err != nil {
		return nil, err
	}

	if len(cols) > 0 {
		if err := e.styleSheet(f, styler, sheet, cols, view); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) styleSheet(f *excelize.File, s *Styler, sheet string, cols []string, view model.View) error {
	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", s.HeaderStyle); err != nil {
		return err
	}

	for i, rec := range view {
		row := i + 2
		for j, c := range cols {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			style := s.CellStyle
			if v, _ := rec.Get(c); v.Kind() == model.KindNumber {
				style = s.NumberStyle
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	// Width from the longest text in each column
	for j, c := range cols {
		width := utf8.RuneCountInString(c)
		for _, rec := range view {
			v, _ := rec.Get(c)
			if n := utf8.RuneCountInString(v.Text()); n > width {
				width = n
			}
		}
		width = max(minColWidth, min(width+2, maxColWidth))

		name, _ := excelize.ColumnNumberToName(j + 1)
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	return nil
}
