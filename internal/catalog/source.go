package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a source has no entry for a date.
var ErrNotFound = errors.New("catalog: no board for date")

// Source looks up the catalog entry for a date.
type Source interface {
	Lookup(ctx context.Context, date string) (Entry, error)
}

// Lookup makes an in-memory Catalog a Source.
func (c Catalog) Lookup(_ context.Context, date string) (Entry, error) {
	e, ok := c[date]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

// FileSource reads a catalog file once, on first lookup.
type FileSource struct {
	path string

	once sync.Once
	cat  Catalog
	err  error
}

// NewFileSource creates a source backed by a YAML or JSON file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and parses the file if it has not been read yet.
func (f *FileSource) Load() (Catalog, error) {
	f.once.Do(func() {
		data, err := os.ReadFile(f.path)
		if err != nil {
			f.err = fmt.Errorf("catalog: cannot read %s: %w", f.path, err)
			return
		}
		f.cat, f.err = Parse(data)
	})
	return f.cat, f.err
}

// Lookup returns the entry for date.
func (f *FileSource) Lookup(ctx context.Context, date string) (Entry, error) {
	cat, err := f.Load()
	if err != nil {
		return Entry{}, err
	}
	return cat.Lookup(ctx, date)
}

// maxEntrySize bounds a fetched entry; a real one is well under 1 KiB.
const maxEntrySize = 64 << 10

// HTTPSource fetches entries from a catalog server.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates a source for the server at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Lookup performs GET {base}/boards/{date}.
func (h *HTTPSource) Lookup(ctx context.Context, date string) (Entry, error) {
	endpoint := h.BaseURL + "/boards/" + url.PathEscape(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("catalog: cannot build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("catalog: fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Entry{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return Entry{}, fmt.Errorf("catalog: fetch %s: unexpected status %s", endpoint, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxEntrySize))
	if err != nil {
		return Entry{}, fmt.Errorf("catalog: read %s: %w", endpoint, err)
	}
	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("catalog: decode %s: %w", endpoint, err)
	}
	return e, nil
}

// Chain tries each source in order and returns the first entry found.
func Chain(sources ...Source) Source {
	return chain(sources)
}

type chain []Source

func (c chain) Lookup(ctx context.Context, date string) (Entry, error) {
	var errs []error
	for _, s := range c {
		if s == nil {
			continue
		}
		e, err := s.Lookup(ctx, date)
		if err == nil {
			return e, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Entry{}, ErrNotFound
	}
	return Entry{}, errors.Join(errs...)
}
