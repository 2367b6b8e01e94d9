package edgar

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
)

// FilingCache is a file-based cache of normalized filing text, one .txt file
// per (ticker, accession number) pair, grouped by ticker. Presence of a file
// means "skip re-fetch"; there is no eviction.
type FilingCache struct {
	dir string
}

// NewFilingCache creates a cache rooted at dir. An empty dir disables caching.
func NewFilingCache(dir string) *FilingCache {
	return &FilingCache{dir: dir}
}

// Enabled reports whether a cache directory is configured.
func (c *FilingCache) Enabled() bool {
	return c != nil && c.dir != ""
}

func (c *FilingCache) filePath(ticker, accession string) string {
	return filepath.Join(c.dir, ticker, fmt.Sprintf("%s.%s.txt", ticker, accession))
}

// Get returns the cached text for a filing, or "" when absent.
func (c *FilingCache) Get(ticker, accession string) string {
	if !c.Enabled() {
		return ""
	}
	data, err := os.ReadFile(c.filePath(ticker, accession))
	if err != nil {
		return ""
	}
	return string(data)
}

// Set stores filing text, creating the ticker subdirectory as needed.
func (c *FilingCache) Set(ticker, accession, text string) error {
	if !c.Enabled() {
		return nil
	}
	path := c.filePath(ticker, accession)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0644)
}

// Has checks whether a filing is cached.
func (c *FilingCache) Has(ticker, accession string) bool {
	if !c.Enabled() {
		return false
	}
	_, err := os.Stat(c.filePath(ticker, accession))
	return err == nil
}

// Dir returns the cache root.
func (c *FilingCache) Dir() string {
	return c.dir
}

// ContentHash returns the MD5 hex digest of content. Used as the fingerprint
// key for the extraction cache.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}
