// Package render draws a filtered view as an HTML table.
package render

import (
	"html/template"
	"io"

	"sheet-filter/internal/model"
)

// EmptyPlaceholder is shown instead of a table when the view has no rows
const EmptyPlaceholder = "No data available"

// Renderer projects a view onto some output
type Renderer interface {
	Render(w io.Writer, view model.View, hl model.HighlightRange) error
}

// HTMLRenderer writes an HTML table fragment
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates a renderer with the built-in table template
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("table").Parse(tableTemplate)),
	}
}

type tableRow struct {
	Cells       []string
	Highlighted bool
}

type tableData struct {
	Empty       bool
	Placeholder string
	Headers     []string
	Rows        []tableRow
}

// Render writes view as a table. The header comes from the first row's keys
// and each body row lists its values in that key order. Body rows whose
// position in view falls inside hl are marked "highlighted".
func (r *HTMLRenderer) Render(w io.Writer, view model.View, hl model.HighlightRange) error {
	return r.tmpl.Execute(w, buildTable(view, hl))
}

func buildTable(view model.View, hl model.HighlightRange) tableData {
	if len(view) == 0 {
		return tableData{Empty: true, Placeholder: EmptyPlaceholder}
	}

	headers := view[0].Keys()
	rows := make([]tableRow, len(view))
	for i, rec := range view {
		cells := make([]string, len(headers))
		for j, key := range headers {
			v, _ := rec.Get(key)
			cells[j] = v.Text()
		}
		rows[i] = tableRow{Cells: cells, Highlighted: hl.Contains(i)}
	}
	return tableData{Headers: headers, Rows: rows}
}

const tableTemplate = `{{if .Empty}}<p>{{.Placeholder}}</p>
{{else}}<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr{{if .Highlighted}} class="highlighted"{{end}}>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}`
