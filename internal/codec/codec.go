// Package codec converts spreadsheet buffers to and from row records.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sheet-filter/internal/model"
)

// Format identifies a spreadsheet encoding
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// HeaderMode controls where record keys come from
type HeaderMode string

const (
	// HeaderRow uses the first row as column keys; later rows are data
	HeaderRow HeaderMode = "row"
	// HeaderLetters uses column letters (A, B, ...) as keys; every row is data
	HeaderLetters HeaderMode = "letters"
)

// ErrUnrecognized is returned when a buffer is not a readable spreadsheet
var ErrUnrecognized = errors.New("unrecognized spreadsheet format")

// zip local file header; every xlsx starts with it
var zipMagic = []byte("PK\x03\x04")

// Options tunes decoding
type Options struct {
	HeaderMode HeaderMode
	// Encodings lists text encodings to try for CSV input, in order.
	// Names follow the WHATWG encoding labels (utf-8, euc-kr, windows-1252, ...).
	Encodings []string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		HeaderMode: HeaderRow,
		Encodings:  []string{"utf-8", "windows-1252"},
	}
}

// ParseHeaderMode converts a config string into a HeaderMode
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch HeaderMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", HeaderRow:
		return HeaderRow, nil
	case HeaderLetters:
		return HeaderLetters, nil
	default:
		return "", fmt.Errorf("unknown header mode %q (want %q or %q)", s, HeaderRow, HeaderLetters)
	}
}

// DetectFormat guesses the format of raw from its content, falling back to
// the extension of name.
func DetectFormat(name string, raw []byte) Format {
	if bytes.HasPrefix(raw, zipMagic) {
		return FormatXLSX
	}
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// Decode reads the first sheet of raw into records
func Decode(raw []byte, format Format, opts Options) (model.Dataset, error) {
	if opts.HeaderMode == "" {
		opts.HeaderMode = HeaderRow
	}

	var grid [][]Cell
	var err error
	switch format {
	case FormatXLSX:
		grid, err = readXLSX(raw)
	case FormatCSV:
		grid, err = readCSV(raw, opts.Encodings)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognized, format)
	}
	if err != nil {
		return nil, err
	}

	return toRecords(grid, opts.HeaderMode), nil
}

// Cell is a decoded grid cell before keys are assigned
type Cell = model.Value

// toRecords assigns keys to a grid of cells
func toRecords(grid [][]Cell, mode HeaderMode) model.Dataset {
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}

	if mode == HeaderLetters {
		keys := letterKeys(width)
		ds := make(model.Dataset, 0, len(grid))
		for _, row := range grid {
			ds = append(ds, buildRecord(keys, row))
		}
		return ds
	}

	if len(grid) == 0 {
		return model.Dataset{}
	}

	keys := headerKeys(grid[0], width)
	ds := make(model.Dataset, 0, len(grid)-1)
	for _, row := range grid[1:] {
		// Blank rows carry no data in header mode
		if isBlank(row) {
			continue
		}
		ds = append(ds, buildRecord(keys, row))
	}
	return ds
}

func buildRecord(keys []string, row []Cell) model.Record {
	rec := model.NewRecord(len(keys))
	for i, k := range keys {
		v := model.Null
		if i < len(row) {
			v = row[i]
		}
		rec.Set(k, v)
	}
	return rec
}

func isBlank(row []Cell) bool {
	for _, c := range row {
		if !c.IsNull() {
			return false
		}
	}
	return true
}

// headerKeys turns the first row into unique keys.
// Blank headers become __EMPTY, __EMPTY_1, ...; duplicates get a _N suffix.
func headerKeys(header []Cell, width int) []string {
	keys := make([]string, width)
	used := make(map[string]bool, width)
	empty := 0

	for i := 0; i < width; i++ {
		var name string
		if i < len(header) && !header[i].IsNull() {
			name = strings.TrimSpace(header[i].Text())
		}
		if name == "" {
			name = "__EMPTY"
			if empty > 0 {
				name = fmt.Sprintf("__EMPTY_%d", empty)
			}
			empty++
		}

		key := name
		for n := 1; used[key]; n++ {
			key = fmt.Sprintf("%s_%d", name, n)
		}
		used[key] = true
		keys[i] = key
	}
	return keys
}

// ColumnLetter converts a 1-based column number into its letter name
func ColumnLetter(n int) string {
	var sb []byte
	for n > 0 {
		n--
		sb = append([]byte{byte('A' + n%26)}, sb...)
		n /= 26
	}
	return string(sb)
}

func letterKeys(width int) []string {
	keys := make([]string, width)
	for i := range keys {
		keys[i] = ColumnLetter(i + 1)
	}
	return keys
}
