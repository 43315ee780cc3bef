package exporter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sheet-filter/internal/codec"
	"sheet-filter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func twoRowView() model.View {
	a := model.NewRecord(3)
	a.Set("A", model.Number(1))
	a.Set("B", model.Null)
	a.Set("C", model.String("x"))

	b := model.NewRecord(3)
	b.Set("A", model.Null)
	b.Set("B", model.Number(2))
	b.Set("C", model.String("y, z"))
	return model.View{a, b}
}

func TestExportCSV(t *testing.T) {
	blob, err := Export(twoRowView(), "csv", "out")
	require.NoError(t, err)

	assert.Equal(t, "out.csv", blob.Name)
	assert.Equal(t, "text/csv;charset=utf-8", blob.ContentType)

	lines := strings.Split(strings.TrimRight(string(blob.Data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "A,B,C", lines[0])
	assert.Equal(t, "1,,x", lines[1])
	assert.Equal(t, `,2,"y, z"`, lines[2])
}

func TestExportXLSXRoundTrip(t *testing.T) {
	view := twoRowView()
	blob, err := Export(view, "xlsx", "")
	require.NoError(t, err)
	assert.Equal(t, "filtered_data.xlsx", blob.Name)

	got, err := codec.Decode(blob.Data, codec.FormatXLSX, codec.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, got, len(view))
	for i := range view {
		assert.True(t, view[i].Equal(got[i]), "row %d: want %v got %v", i, view[i].Values(), got[i].Values())
	}
}

func TestExportXLSXLayout(t *testing.T) {
	blob, err := NewExcelExporter().Encode(twoRowView())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "layout.xlsx")
	require.NoError(t, os.WriteFile(path, blob, 0644))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{codec.DefaultSheetName}, f.GetSheetList())

	panes, err := f.GetPanes(codec.DefaultSheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)

	header, err := f.GetCellValue(codec.DefaultSheetName, "C1")
	require.NoError(t, err)
	assert.Equal(t, "C", header)
}

func TestExportEmptyView(t *testing.T) {
	for _, format := range []string{"xlsx", "csv", "json", "html", "docx"} {
		blob, err := Export(model.View{}, format, "empty")
		require.NoError(t, err, format)
		assert.Equal(t, "empty."+format, blob.Name)
	}
}

func TestExportJSONKeepsColumnOrder(t *testing.T) {
	blob, err := Export(twoRowView(), "json", "out")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"A\": 1,\n    \"B\": null,\n    \"C\": \"x\"\n  },\n  {\n    \"A\": null,\n    \"B\": 2,\n    \"C\": \"y, z\"\n  }\n]\n", string(blob.Data))
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := Export(twoRowView(), "pdf", "out")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

type failingExporter struct{}

func (failingExporter) Extension() string   { return "bad" }
func (failingExporter) ContentType() string { return "application/octet-stream" }
func (failingExporter) Encode(model.View) ([]byte, error) {
	return nil, errors.New("cannot reconcile columns")
}

func TestExportWrapsSerializationErrors(t *testing.T) {
	_, err := ExportWith(failingExporter{}, twoRowView(), "out")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerialization))
	assert.Contains(t, err.Error(), "cannot reconcile columns")
}

func TestGetExporters(t *testing.T) {
	exps := GetExporters([]string{"excel", "xlsx", " CSV ", "pdf", "word", "docx", "html"})
	var exts []string
	for _, e := range exps {
		exts = append(exts, e.Extension())
	}
	assert.Equal(t, []string{"xlsx", "csv", "docx", "html"}, exts)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "filtered_data.csv", FileName("  ", "csv"))
	assert.Equal(t, "report.xlsx", FileName("report", "xlsx"))
	assert.Equal(t, "report.xlsx", FileName("report.xlsx", "xlsx"))
	assert.Equal(t, "report.csv.xlsx", FileName("report.csv", "xlsx"))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path, err := Save(dir, Blob{Name: "../escape.csv", Data: []byte("A\n")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A\n", string(data))
}
