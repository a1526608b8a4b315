package openapi

import (
	"context"
	"fmt"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
)

// Source produces the catalog's full, unfiltered OpenAPI document.
// Load returns a freshly parsed document on every call, so callers are
// free to mutate the result.
type Source interface {
	Load(ctx context.Context) (*openapi3.T, error)
}

// FileSource reads the spec from a local JSON or YAML file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(ctx context.Context) (*openapi3.T, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading spec %s: %w", s.Path, err)
	}
	return Parse(ctx, s.Path, data)
}

// HTTPSource downloads the spec from a URL, caching the raw bytes on disk.
// Only the download is cached; the document is re-parsed per call.
type HTTPSource struct {
	URL   string
	cache *Cache
}

func NewHTTPSource(url, cacheDir string) *HTTPSource {
	return &HTTPSource{
		URL:   url,
		cache: NewCache(cacheDir),
	}
}

func (s *HTTPSource) Load(ctx context.Context) (*openapi3.T, error) {
	data, err := Fetch(ctx, s.URL, s.cache)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, s.URL, data)
}

// Refresh invalidates the cached download so the next Load re-fetches.
func (s *HTTPSource) Refresh() {
	s.cache.Invalidate(s.URL)
}
