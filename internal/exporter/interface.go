package exporter

import (
	"sheet-filter/internal/model"
)

// Exporter is the unified interface for all output formats
type Exporter interface {
	// Extension is the file extension without the dot (xlsx, csv, ...)
	Extension() string
	ContentType() string
	Encode(view model.View) ([]byte, error)
}

// Blob is a serialized view ready to be saved or downloaded
type Blob struct {
	Name        string
	ContentType string
	Data        []byte
}
