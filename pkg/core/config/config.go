// Package config defines the run settings the CLI hands to each component at
// construction. There is no process-wide configuration singleton; every
// component receives exactly the values it needs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Identity is the contact string the SEC requires on every request.
type Identity struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Settings drives one scan run.
type Settings struct {
	Identity Identity `yaml:"identity"`

	// LLM collaborator
	Provider string `yaml:"provider"` // "gemini" or "deepseek"
	Model    string `yaml:"model"`

	// Discovery
	Strategy   string   `yaml:"strategy"` // "index" or "search"
	Query      string   `yaml:"query"`
	FormTypes  []string `yaml:"form_types"`
	FromDate   string   `yaml:"from_date"` // YYYY-MM-DD
	ToDate     string   `yaml:"to_date"`
	MaxResults int      `yaml:"max_results"`

	// Pipeline pacing and output
	MaxFilings int    `yaml:"max_filings"`
	DelayMs    int    `yaml:"delay_ms"`
	CacheDir   string `yaml:"cache_dir"`
	OutputDir  string `yaml:"output_dir"`
}

// Default returns the settings used when no config file is given.
func Default() Settings {
	return Settings{
		Identity:   Identity{Name: "Bond Extractor", Email: "bonds@example.com"},
		Provider:   "gemini",
		Strategy:   "index",
		MaxFilings: 10,
		DelayMs:    500,
		CacheDir:   "filings_cache",
		OutputDir:  "output",
	}
}

// Load reads settings from a YAML file layered over Default, then applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	s.applyEnv()
	return s, nil
}

// applyEnv lets deploy environments override the contact identity without
// editing the config file.
func (s *Settings) applyEnv() {
	if v := os.Getenv("SEC_EDGAR_NAME"); v != "" {
		s.Identity.Name = v
	}
	if v := os.Getenv("SEC_EDGAR_EMAIL"); v != "" {
		s.Identity.Email = v
	}
	if v := os.Getenv("BOND_MODEL"); v != "" {
		s.Model = v
	}
	if v := os.Getenv("BOND_PROVIDER"); v != "" {
		s.Provider = v
	}
}
