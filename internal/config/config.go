// Package config handles repository configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents repository configuration stored in .facnet/config.yaml.
type Config struct {
	RosterCSV     string `yaml:"roster_csv"`               // Path to the faculty roster table
	WorksCSV      string `yaml:"works_csv"`                // Path to the deduplicated publication table
	AuthorshipCSV string `yaml:"authorship_csv,omitempty"` // Optional pre-dedup authorship expansion table

	YearStart int `yaml:"year_start"` // Valid publication-year window start
	YearEnd   int `yaml:"year_end"`   // Valid publication-year window end

	MatchPolicy string `yaml:"match_policy,omitempty"` // "strict" (default) or "loose"
	DebounceMS  int    `yaml:"debounce_ms,omitempty"`  // Free-text quiescence delay
}

const (
	FacnetDir  = ".facnet"
	ConfigFile = "config.yaml"
	CacheDir   = "cache"
	DBFile     = "facnet.db"

	DefaultYearStart  = 2021
	DefaultYearEnd    = 2025
	DefaultDebounceMS = 200
)

// Default returns a config with the standard data layout and year window.
func Default() *Config {
	return &Config{
		RosterCSV:     "data/roster_with_metrics.csv",
		WorksCSV:      "data/openalex_all_authors_last5y_key_fields_dedup.csv",
		AuthorshipCSV: "data/openalex_authorships.csv",
		YearStart:     DefaultYearStart,
		YearEnd:       DefaultYearEnd,
		MatchPolicy:   "strict",
		DebounceMS:    DefaultDebounceMS,
	}
}

// FacnetPath returns the path to the .facnet directory from a root path.
func FacnetPath(root string) string {
	return filepath.Join(root, FacnetDir)
}

// ConfigPath returns the path to config.yaml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, FacnetDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, FacnetDir, CacheDir)
}

// DBPath returns the path to the SQLite cache from a root path.
func DBPath(root string) string {
	return filepath.Join(root, FacnetDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a facnet repository.
func IsRepository(root string) bool {
	info, err := os.Stat(FacnetPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a facnet repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a facnet repository (no .facnet directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root. Missing
// fields fall back to defaults so older config files keep working.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.YearStart == 0 {
		cfg.YearStart = DefaultYearStart
	}
	if cfg.YearEnd == 0 {
		cfg.YearEnd = DefaultYearEnd
	}
	if cfg.YearEnd < cfg.YearStart {
		cfg.YearStart, cfg.YearEnd = cfg.YearEnd, cfg.YearStart
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = DefaultDebounceMS
	}

	return cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ResolvePath resolves a possibly relative data path against the repo root.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
