package exporter

import (
	"errors"
	"fmt"
	"strings"

	"sheet-filter/internal/exporter/html"
	"sheet-filter/internal/exporter/word"
	"sheet-filter/internal/model"
)

// DefaultFileName is used when no file name is given
const DefaultFileName = "filtered_data"

var (
	// ErrSerialization wraps any failure while encoding a view
	ErrSerialization = errors.New("serialization failed")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Lookup returns the exporter for a single format name
func Lookup(format string) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "excel", "xlsx":
		return NewExcelExporter(), nil
	case "csv":
		return NewCSVExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	case "html":
		return html.NewHTMLExporter(), nil
	case "word", "docx":
		return word.NewWordExporter(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// GetExporters returns a list of Exporters based on requested formats.
// Unknown names are skipped and duplicates (including aliases) collapse.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		exp, err := Lookup(fmtStr)
		if err != nil {
			continue
		}
		if seen[exp.Extension()] {
			continue
		}
		seen[exp.Extension()] = true
		exporters = append(exporters, exp)
	}

	return exporters
}

// Export serializes view in the named format. It does not touch any
// stored state; saving the blob is left to the caller.
func Export(view model.View, format, filename string) (Blob, error) {
	exp, err := Lookup(format)
	if err != nil {
		return Blob{}, err
	}
	return ExportWith(exp, view, filename)
}

// ExportWith serializes view with a specific exporter
func ExportWith(exp Exporter, view model.View, filename string) (Blob, error) {
	data, err := exp.Encode(view)
	if err != nil {
		return Blob{}, fmt.Errorf("%w: %s: %v", ErrSerialization, exp.Extension(), err)
	}
	return Blob{
		Name:        FileName(filename, exp.Extension()),
		ContentType: exp.ContentType(),
		Data:        data,
	}, nil
}

// FileName builds "<base>.<ext>", defaulting a blank base to DefaultFileName.
// A trailing ".<ext>" already present on base is not doubled.
func FileName(base, ext string) string {
	base = strings.TrimSpace(base)
	base = strings.TrimSuffix(base, "."+ext)
	if base == "" {
		base = DefaultFileName
	}
	return base + "." + ext
}
