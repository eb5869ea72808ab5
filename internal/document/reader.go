package document

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verifact/verifact/internal/cache"
)

// Reader extracts document text, caching results by content digest so
// repeated runs over the same file skip re-extraction
type Reader struct {
	registry *Registry
	cache    cache.Cache
}

// NewReader creates a new reader. A nil cache disables caching.
func NewReader(c cache.Cache) *Reader {
	return &Reader{
		registry: NewRegistry(),
		cache:    c,
	}
}

// Extracted is the cached product of text extraction
type Extracted struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

// Read extracts text from the document at path
func (r *Reader) Read(path string) (*Extracted, error) {
	source, err := r.registry.FindSource(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	key := cache.Key(contentDigest(data))
	if r.cache != nil {
		if cached, found := r.cache.Get(key); found {
			var ex Extracted
			if err := json.Unmarshal(cached, &ex); err == nil {
				return &ex, nil
			}
		}
	}

	text, pages, err := source.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	ex := &Extracted{Text: text, Pages: pages}

	if r.cache != nil {
		if encoded, err := json.Marshal(ex); err == nil {
			_ = r.cache.Set(key, encoded, 0)
		}
	}

	return ex, nil
}

// Subject derives a human-readable subject from the file name
func Subject(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func contentDigest(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// DefaultCacheDir returns the default on-disk cache location
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "verifact-cache")
	}
	return filepath.Join(home, ".verifact", "cache")
}

// NewDefaultCache builds the layered text cache used by the CLI
func NewDefaultCache(dir string, memoryTTL, diskTTL time.Duration) cache.Cache {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	return cache.NewLayeredCache(memoryTTL, dir, diskTTL)
}
