// Package timeline loads the historical entries the terminal decrypts.
//
// Entries come from a JSON array (data.json) or a YAML list using the keys
// titulo, anio and descripcion. A Source hides where the bytes live: the
// embedded default set, a local file or an HTTP(S) URL.
package timeline

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotArray is returned when the payload is not a list of entries.
var ErrNotArray = errors.New("timeline: payload is not an array")

//go:embed data/data.json
var defaultData []byte

// Entry is one historical milestone.
type Entry struct {
	Title       string `json:"titulo" yaml:"titulo"`
	Year        string `json:"anio" yaml:"anio"`
	Description string `json:"descripcion" yaml:"descripcion"`
}

// Status tracks a load in progress.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Format selects the decoder.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor guesses the format from a file name or URL path.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a payload. Anything but a top-level list fails with
// ErrNotArray.
func Decode(data []byte, format Format) ([]Entry, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}
	var entries []Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("timeline: decode json: %w", err)
	}
	return entries, nil
}

func decodeYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("timeline: decode yaml: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, ErrNotArray
	}
	var entries []Entry
	if err := doc.Content[0].Decode(&entries); err != nil {
		return nil, fmt.Errorf("timeline: decode yaml: %w", err)
	}
	return entries, nil
}

// Source produces timeline entries.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
	Name() string
}

// NewSource picks a source from a location: empty for the embedded set, an
// http(s) URL, or a file path.
func NewSource(location string) Source {
	switch {
	case location == "":
		return Embedded{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return &HTTP{URL: location}
	default:
		return File{Path: location}
	}
}

// Embedded serves the data set compiled into the binary.
type Embedded struct{}

func (Embedded) Load(context.Context) ([]Entry, error) { return Decode(defaultData, FormatJSON) }
func (Embedded) Name() string                          { return "data.json" }

// File reads entries from disk. YAML is chosen by the .yaml/.yml extension.
type File struct {
	Path string
}

func (f File) Load(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("timeline: read %s: %w", f.Path, err)
	}
	return Decode(data, FormatFor(f.Path))
}

func (f File) Name() string { return filepath.Base(f.Path) }

// DefaultHTTPTimeout bounds a fetch when the caller's context has no deadline.
const DefaultHTTPTimeout = 10 * time.Second

// maxPayload caps the bytes read from a remote source.
const maxPayload = 4 << 20

// HTTP fetches entries from a URL.
type HTTP struct {
	URL    string
	Client *http.Client
}

func (h *HTTP) Load(ctx context.Context) ([]Entry, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("timeline: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timeline: fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timeline: fetch %s: unexpected status %s", h.URL, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("timeline: read body: %w", err)
	}

	format := FormatFor(req.URL.Path)
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = FormatYAML
	}
	return Decode(data, format)
}

func (h *HTTP) Name() string {
	return h.URL
}
