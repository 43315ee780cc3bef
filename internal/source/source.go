// Package source fetches the raw spreadsheet buffer from a path or URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrFetch marks a failure to obtain the source bytes
var ErrFetch = errors.New("fetch failed")

// maxBytes caps how much a single fetch may read
const maxBytes = 256 << 20

// Source yields the bytes of a spreadsheet file
type Source interface {
	// Name is the file name used for format detection
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

// Open returns the Source for location: http(s) URLs are fetched over HTTP,
// anything else is treated as a local path.
func Open(location string) Source {
	if IsRemote(location) {
		return NewHTTPSource(location, nil)
	}
	return &FileSource{Path: location}
}

// FileSource reads a local file
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return filepath.Base(s.Path) }

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}

// HTTPSource downloads a file with a single GET request
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTPSource; a nil client gets a 30s timeout default
func NewHTTPSource(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{URL: rawURL, Client: client}
}

func (s *HTTPSource) Name() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return s.URL
	}
	return path.Base(u.Path)
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, s.URL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}
	if len(data) > maxBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrFetch, s.URL, maxBytes)
	}
	return data, nil
}

// IsRemote reports whether location would be fetched over HTTP
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
