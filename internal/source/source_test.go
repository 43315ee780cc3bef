package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPicksImplementation(t *testing.T) {
	_, ok := Open("https://example.com/files/sheet.xlsx").(*HTTPSource)
	assert.True(t, ok)
	_, ok = Open("./data/sheet.xlsx").(*FileSource)
	assert.True(t, ok)

	assert.True(t, IsRemote("HTTP://example.com/a.csv"))
	assert.False(t, IsRemote("/tmp/a.csv"))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(p, []byte("A\n1\n"), 0644))

	src := Open(p)
	assert.Equal(t, "in.csv", src.Name())

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A\n1\n", string(data))

	_, err = Open(filepath.Join(dir, "missing.csv")).Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/sheet.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("A\n1\n"))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/files/sheet.csv", srv.Client())
	assert.Equal(t, "sheet.csv", src.Name())

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A\n1\n", string(data))

	_, err = NewHTTPSource(srv.URL+"/nope.csv", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestHTTPSourceHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("A\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPSource(srv.URL, srv.Client()).Fetch(ctx)
	assert.True(t, errors.Is(err, ErrFetch))
}
