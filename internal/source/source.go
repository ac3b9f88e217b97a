// Package source turns invoice files into the newline-delimited UTF-8 text
// blob the pipeline consumes.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extractor converts one input format into plain invoice text.
type Extractor interface {
	Extract(r io.Reader) (string, error)
	Format() string
}

// Registry holds named extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor. Panics on duplicate format.
func (r *Registry) Register(e Extractor) {
	key := strings.ToLower(e.Format())
	if _, ok := r.extractors[key]; ok {
		panic("duplicate extractor format: " + key)
	}
	r.extractors[key] = e
}

// Get returns the extractor for format, or nil.
func (r *Registry) Get(format string) Extractor {
	return r.extractors[strings.ToLower(format)]
}

// ForFile picks an extractor by file extension.
func (r *Registry) ForFile(path string) (Extractor, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "pdf":
		// keep extension as format
	case "txt", "text", "":
		ext = "text"
	}
	e := r.Get(ext)
	if e == nil {
		return nil, fmt.Errorf("no extractor for %q", filepath.Ext(path))
	}
	return e, nil
}

// DefaultRegistry returns a registry with all built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TextExtractor{})
	r.Register(&PDFExtractor{})
	return r
}

// TextExtractor passes pre-extracted text through unchanged.
type TextExtractor struct{}

// Format returns the extractor name.
func (e *TextExtractor) Format() string { return "text" }

// Extract reads the whole input as UTF-8 text.
func (e *TextExtractor) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading text source: %w", err)
	}
	return string(data), nil
}
