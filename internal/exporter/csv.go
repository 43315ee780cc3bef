package exporter

import (
	"sheet-filter/internal/codec"
	"sheet-filter/internal/model"
)

// CSVExporter writes comma separated text with a header line
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Extension() string   { return "csv" }
func (e *CSVExporter) ContentType() string { return "text/csv;charset=utf-8" }

func (e *CSVExporter) Encode(view model.View) ([]byte, error) {
	return codec.EncodeCSV(view)
}
