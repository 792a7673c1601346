package model

import (
	"runtime"
	"time"
)

// Config is the explicit configuration surface consumed by the core. The CLI
// assembles it from flags, environment, and the config file; core packages
// never read global state themselves.
type Config struct {
	Vault       VaultConfig       `yaml:"vault" json:"vault"`
	Scan        ScanConfig        `yaml:"scan" json:"scan"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// VaultConfig locates the vault and names its conventional folders.
type VaultConfig struct {
	Path string `yaml:"path" json:"path"`

	// GlobalFolders are the subfolders merged in global scope. Records are
	// merged into one batch before deduplication so cross-folder duplicates
	// are caught.
	GlobalFolders []string `yaml:"global_folders" json:"global_folders"`

	// MasterFolder is where global registries conventionally live.
	MasterFolder string `yaml:"master_folder" json:"master_folder"`
}

// ScanConfig controls document discovery and extraction.
type ScanConfig struct {
	SkipDirs     []string `yaml:"skip_dirs" json:"skip_dirs"`
	Blocklist    []string `yaml:"blocklist" json:"blocklist"` // kinds suppressed from output
	ContextLines int      `yaml:"context_lines" json:"context_lines"`
	MaxFileBytes int64    `yaml:"max_file_bytes" json:"max_file_bytes"`
}

// ConcurrencyConfig bounds the parse worker pool.
type ConcurrencyConfig struct {
	Workers        int     `yaml:"workers" json:"workers"`
	FilesPerSecond float64 `yaml:"files_per_second" json:"files_per_second"` // 0 = unthrottled
	Burst          int     `yaml:"burst" json:"burst"`
}

// CacheConfig controls the per-file extraction cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir" json:"dir"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// OutputConfig controls collaborator-facing rendering.
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" json:"include_footer"`
	LocalFolder   string `yaml:"local_folder" json:"local_folder"` // conventional local report subfolder
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Vault: VaultConfig{
			GlobalFolders: []string{"03_PUBLICATIONS", "Glossary", "Notes"},
			MasterFolder:  "07_MASTER_TRUTH",
		},
		Scan: ScanConfig{
			SkipDirs: []string{
				".obsidian", ".git", ".trash", ".venv",
				"node_modules", "vendor", "_TAG_NOTES",
			},
			ContextLines: 2,
			MaxFileBytes: 4_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers:        runtime.NumCPU(),
			FilesPerSecond: 0,
			Burst:          5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			IncludeFooter: true,
			LocalFolder:   "_Data_Analytics",
		},
	}
}
