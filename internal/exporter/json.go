package exporter

import (
	"encoding/json"

	"sheet-filter/internal/model"
)

// JSONExporter writes the view as an array of objects, keys in column order
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Extension() string   { return "json" }
func (e *JSONExporter) ContentType() string { return "application/json" }

func (e *JSONExporter) Encode(view model.View) ([]byte, error) {
	if view == nil {
		view = model.View{}
	}
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
