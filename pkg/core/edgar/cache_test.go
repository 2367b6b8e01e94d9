package edgar

import (
	"path/filepath"
	"testing"
)

func TestFilingCacheRoundTrip(t *testing.T) {
	cache := NewFilingCache(t.TempDir())

	if cache.Has("AES", "acc-1") {
		t.Error("empty cache should not report a hit")
	}
	if err := cache.Set("AES", "acc-1", "normalized text"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !cache.Has("AES", "acc-1") {
		t.Error("Has should report the stored filing")
	}
	if got := cache.Get("AES", "acc-1"); got != "normalized text" {
		t.Errorf("Get = %q", got)
	}

	// Files are grouped by ticker.
	want := filepath.Join(cache.Dir(), "AES", "AES.acc-1.txt")
	if cache.filePath("AES", "acc-1") != want {
		t.Errorf("path = %q, want %q", cache.filePath("AES", "acc-1"), want)
	}
}

func TestFilingCacheDisabled(t *testing.T) {
	cache := NewFilingCache("")

	if err := cache.Set("AES", "acc-1", "text"); err != nil {
		t.Fatalf("disabled Set should be a no-op, got %v", err)
	}
	if cache.Get("AES", "acc-1") != "" || cache.Has("AES", "acc-1") {
		t.Error("disabled cache should never hit")
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash("some filing text")
	b := ContentHash("some filing text")
	c := ContentHash("different text")

	if a != b {
		t.Error("hash must be deterministic")
	}
	if a == c {
		t.Error("different inputs should not collide")
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
}
