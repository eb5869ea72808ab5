package document

import (
	"fmt"
	"os"
)

// PlainTextSource handles plain-text files directly
type PlainTextSource struct{}

// NewPlainTextSource creates a new plain-text source
func NewPlainTextSource() *PlainTextSource {
	return &PlainTextSource{}
}

// Name returns the source name
func (s *PlainTextSource) Name() string {
	return "text"
}

// CanHandle checks if this source can handle the given file
func (s *PlainTextSource) CanHandle(path string) bool {
	return hasExt(path, ".txt", ".md", ".text")
}

// ExtractText reads the file contents as-is
func (s *PlainTextSource) ExtractText(path string) (string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read file: %w", err)
	}
	return string(data), 1, nil
}
