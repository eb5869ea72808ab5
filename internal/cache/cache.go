package cache

import "time"

// Cache defines the interface for caching extracted document text
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a namespaced cache key from a document content digest
func Key(digest string) string {
	return "verifact:v1:" + digest
}
