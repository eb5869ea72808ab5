package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source defines the interface for format-specific text extractors
type Source interface {
	// Name returns the source name
	Name() string

	// CanHandle checks if this source can handle the given file
	CanHandle(path string) bool

	// ExtractText produces UTF-8 text from the file. Unreadable content
	// yields empty text, not an error.
	ExtractText(path string) (string, int, error) // text, pages
}

// Registry manages document sources
type Registry struct {
	sources []Source
}

// NewRegistry creates a registry with the built-in sources
func NewRegistry() *Registry {
	return &Registry{
		sources: []Source{
			NewPDFSource(),
			NewPlainTextSource(),
		},
	}
}

// Register registers an additional source
func (r *Registry) Register(source Source) {
	r.sources = append(r.sources, source)
}

// FindSource finds the source for the given file
func (r *Registry) FindSource(path string) (Source, error) {
	for _, source := range r.sources {
		if source.CanHandle(path) {
			return source, nil
		}
	}
	return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
