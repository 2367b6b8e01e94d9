package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", s.Provider)
	assert.Equal(t, "index", s.Strategy)
	assert.Equal(t, 10, s.MaxFilings)
	assert.Equal(t, 500, s.DelayMs)
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
identity:
  name: Jane Analyst
  email: jane@example.com
provider: deepseek
strategy: search
query: subordinated notes
max_filings: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Analyst", s.Identity.Name)
	assert.Equal(t, "deepseek", s.Provider)
	assert.Equal(t, "subordinated notes", s.Query)
	assert.Equal(t, 3, s.MaxFilings)

	// Unset keys keep their defaults.
	assert.Equal(t, 500, s.DelayMs)
	assert.Equal(t, "filings_cache", s.CacheDir)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SEC_EDGAR_NAME", "Ops Team")
	t.Setenv("BOND_MODEL", "gemini-2.5-pro")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Ops Team", s.Identity.Name)
	assert.Equal(t, "gemini-2.5-pro", s.Model)
}
