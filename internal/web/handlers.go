package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sheet-filter/internal/exporter"
	"sheet-filter/internal/filter"
	"sheet-filter/internal/logger"
	"sheet-filter/internal/model"
)

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Source    string
	Loaded    bool
	Total     int
	Shown     int
	Error     string
	Form      filter.Input
	Formats   []string
	FileName  string
	CanReload bool
	Table     template.HTML
}

// handleIndex renders the controls and the current view
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := filter.Input{
		Primary: q.Get("primary"),
		RowFrom: q.Get("from"),
		RowTo:   q.Get("to"),
		ColFrom: q.Get("col_from"),
		ColTo:   q.Get("col_to"),
		Mode:    q.Get("mode"),
	}
	if form.Mode == "" {
		form.Mode = s.opts.DefaultMode
	}

	hl := model.NoHighlight
	if q.Has("from") {
		hl = highlightFromQuery(q)
	}

	s.renderPage(w, http.StatusOK, form, hl, q.Get("error"))
}

// handleFilter applies the submitted controls and replaces the view
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	in := filter.Input{
		Primary: r.PostForm.Get("primary"),
		RowFrom: r.PostForm.Get("row_from"),
		RowTo:   r.PostForm.Get("row_to"),
		ColFrom: r.PostForm.Get("col_from"),
		ColTo:   r.PostForm.Get("col_to"),
		Mode:    r.PostForm.Get("mode"),
	}

	params, err := filter.ParseParams(in)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, in, model.NoHighlight, err.Error())
		return
	}

	view := filter.Apply(s.store.Current(), params)
	s.store.SetView(view)
	logger.Debug("Filter %+v matched %d rows", params, len(view))

	hl := filter.Highlight(params)
	q := url.Values{}
	q.Set("primary", params.Primary)
	q.Set("from", strconv.Itoa(hl.From))
	q.Set("to", strconv.Itoa(hl.To))
	q.Set("col_from", params.ColFrom)
	q.Set("col_to", params.ColTo)
	q.Set("mode", params.Mode.String())
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

// handleReset shows the whole dataset again
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.SetView(model.View(s.store.Current()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleReload fetches the configured source again. A failed reload keeps
// whatever was loaded before.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.src == nil {
		writeError(w, http.StatusNotFound, "no source configured")
		return
	}

	if _, err := s.store.LoadFrom(r.Context(), s.src); err != nil {
		logger.LogLoadError(s.src.Name(), err)
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleExport downloads the current view as <filename>.<format>
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	blob, err := exporter.Export(s.store.View(), format, r.URL.Query().Get("filename"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, exporter.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		logger.Error("Export failed: %v", err)
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, blob.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Write(blob.Data)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, form filter.Input, hl model.HighlightRange, errMsg string) {
	view := s.store.View()

	var table bytes.Buffer
	if err := s.renderer.Render(&table, view, hl); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data := pageData{
		Source:    s.store.Name(),
		Loaded:    s.store.Loaded(),
		Total:     len(s.store.Current()),
		Shown:     len(view),
		Error:     errMsg,
		Form:      form,
		Formats:   s.opts.Formats,
		FileName:  s.opts.DefaultFileName,
		CanReload: s.src != nil,
		// Escaped by the renderer's own template
		Table: template.HTML(table.String()),
	}
	if strings.TrimSpace(data.FileName) == "" {
		data.FileName = exporter.DefaultFileName
	}

	var page bytes.Buffer
	if err := pageTmpl.Execute(&page, data); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page.Bytes())
}

func highlightFromQuery(q url.Values) model.HighlightRange {
	from, err := strconv.Atoi(q.Get("from"))
	if err != nil {
		return model.NoHighlight
	}
	to, err := strconv.Atoi(q.Get("to"))
	if err != nil {
		to = from
	}
	return model.HighlightRange{From: from, To: to}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}
