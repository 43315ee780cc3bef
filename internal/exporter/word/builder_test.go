package word

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"sheet-filter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func TestEncodeFillsPlaceholders(t *testing.T) {
	e := NewWordExporter()
	e.now = func() time.Time { return time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC) }

	r := model.NewRecord(2)
	r.Set("NAME", model.String("alice"))
	r.Set("SCORE", model.Number(9.5))

	out, err := e.Encode(model.View{r})
	require.NoError(t, err)

	doc := documentXML(t, out)
	assert.Contains(t, doc, "Date: 2024-05-02")
	assert.Contains(t, doc, "Total Rows: 1")
	assert.Contains(t, doc, "Columns: NAME, SCORE")
	assert.Contains(t, doc, "NAME: alice")
	assert.Contains(t, doc, "SCORE: 9.5")
	assert.NotContains(t, doc, "{{Content}}")
}

func TestBuildContentEmpty(t *testing.T) {
	assert.Equal(t, "No data available", buildContent(nil, nil))
}
