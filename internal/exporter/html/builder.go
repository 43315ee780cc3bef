package html

import (
	"bytes"
	"html/template"
	"time"

	"sheet-filter/internal/model"
	"sheet-filter/internal/render"
)

type HTMLExporter struct {
	renderer *render.HTMLRenderer
	now      func() time.Time
}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{
		renderer: render.NewHTMLRenderer(),
		now:      time.Now,
	}
}

// ReportData feeds the standalone page template
type ReportData struct {
	GeneratedAt string
	TotalRows   int
	TotalCols   int
	Table       template.HTML
}

func (e *HTMLExporter) Extension() string   { return "html" }
func (e *HTMLExporter) ContentType() string { return "text/html;charset=utf-8" }

// Encode renders the view as a self-contained HTML document
func (e *HTMLExporter) Encode(view model.View) ([]byte, error) {
	var table bytes.Buffer
	if err := e.renderer.Render(&table, view, model.NoHighlight); err != nil {
		return nil, err
	}

	cols := 0
	if len(view) > 0 {
		cols = view[0].Len()
	}

	data := ReportData{
		GeneratedAt: e.now().Format("2006-01-02 15:04"),
		TotalRows:   len(view),
		TotalCols:   cols,
		// Already escaped by the renderer's html/template
		Table: template.HTML(table.String()),
	}

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
