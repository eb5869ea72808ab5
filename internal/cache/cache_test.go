package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	if got := Key("abc123"); got != "verifact:v1:abc123" {
		t.Errorf("Unexpected key: %q", got)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("extracted text"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || !bytes.Equal(val, []byte("extracted text")) {
		t.Errorf("Expected cached value back, got %q found=%v", val, found)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected entry expired")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("verifact:v1:digest", []byte("page text"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("verifact:v1:digest")
	if !found || !bytes.Equal(val, []byte("page text")) {
		t.Errorf("Expected cached value back, got %q found=%v", val, found)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("Expected entry expired and removed")
	}
}

func TestDiskCache_DeleteAndClear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected deleted entry gone")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected cleared entry gone")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Fresh instance over the same directory only has the disk layer
	fresh := NewLayeredCache(time.Minute, dir, time.Hour)

	val, found := fresh.Get("k")
	if !found || !bytes.Equal(val, []byte("v")) {
		t.Fatalf("Expected disk hit, got %q found=%v", val, found)
	}

	// Promoted into memory
	if _, found := fresh.memory.Get("k"); !found {
		t.Error("Expected disk hit promoted to memory")
	}
}
