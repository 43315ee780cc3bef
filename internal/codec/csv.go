package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"sheet-filter/internal/model"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// readCSV parses CSV text into a grid of string cells.
// Every value is a string; empty fields are null.
func readCSV(raw []byte, encodings []string) ([][]Cell, error) {
	text, err := decodeText(raw, encodings)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}

	grid := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, field := range row {
			if field == "" {
				cells[j] = model.Null
			} else {
				cells[j] = model.String(field)
			}
		}
		grid[i] = cells
	}
	return grid, nil
}

// decodeText converts raw bytes into UTF-8 using the first workable encoding
// hint. UTF-8 is only accepted when the input is valid UTF-8.
func decodeText(raw []byte, encodings []string) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if len(encodings) == 0 {
		encodings = DefaultOptions().Encodings
	}

	for _, name := range encodings {
		label := strings.ToLower(strings.TrimSpace(name))
		if label == "utf-8" || label == "utf8" {
			if utf8.Valid(raw) {
				return string(raw), nil
			}
			continue
		}

		enc, err := htmlindex.Get(label)
		if err != nil {
			return "", fmt.Errorf("unknown text encoding %q: %w", name, err)
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}

	return "", fmt.Errorf("%w: text is not in any of the encodings %v", ErrUnrecognized, encodings)
}

// EncodeCSV serializes rows as comma separated text with a header line
func EncodeCSV(rows []model.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	cols := model.Columns(rows)
	if len(cols) > 0 {
		if err := w.Write(cols); err != nil {
			return nil, fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	line := make([]string, len(cols))
	for _, rec := range rows {
		for j, c := range cols {
			v, _ := rec.Get(c)
			line[j] = v.Text()
		}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
