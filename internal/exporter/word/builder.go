package word

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"sheet-filter/internal/model"

	"github.com/nguyenthenguyen/docx"
)

type WordExporter struct {
	now func() time.Time
}

func NewWordExporter() *WordExporter {
	return &WordExporter{now: time.Now}
}

func (e *WordExporter) Extension() string { return "docx" }

func (e *WordExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Encode fills the report template with one block per row
func (e *WordExporter) Encode(view model.View) ([]byte, error) {
	tmpl, err := buildTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to build template: %w", err)
	}

	r, err := docx.ReadDocxFromMemory(bytes.NewReader(tmpl), int64(len(tmpl)))
	if err != nil {
		return nil, fmt.Errorf("failed to read docx template: %w", err)
	}
	// In-memory packages hold no file handle, so there is nothing to Close

	doc := r.Editable()
	cols := model.Columns(view)

	// The docx library handles the XML encoding of replacements
	replacements := []struct{ key, val string }{
		{placeholderDate, e.now().Format("2006-01-02")},
		{placeholderRows, fmt.Sprintf("%d", len(view))},
		{placeholderColumns, strings.Join(cols, ", ")},
		{placeholderContent, buildContent(view, cols)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.key, rep.val, -1); err != nil {
			return nil, fmt.Errorf("failed to fill %s: %w", rep.key, err)
		}
	}

	var out bytes.Buffer
	if err := doc.Write(&out); err != nil {
		return nil, fmt.Errorf("failed to write Word document: %w", err)
	}
	return out.Bytes(), nil
}

// buildContent lists every row as "key: value" lines
func buildContent(view model.View, cols []string) string {
	if len(view) == 0 {
		return "No data available"
	}

	var sb strings.Builder
	for i, rec := range view {
		sb.WriteString(fmt.Sprintf("Row %d\n", i+1))
		for _, c := range cols {
			v, ok := rec.Get(c)
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", c, v.Text()))
		}
		if i < len(view)-1 {
			sb.WriteString(strings.Repeat("-", 40) + "\n")
		}
	}
	return sb.String()
}
