package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the full configuration tree.
// Hierarchy (highest to lowest priority): CLI flags, STATGRAFT_* environment
// variables, ~/.statgraft/config.yaml, defaults.
type Config struct {
	Lookup      LookupConfig      `yaml:"lookup" mapstructure:"lookup"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Chart       ChartConfig       `yaml:"chart" mapstructure:"chart"`
	Enrich      EnrichConfig      `yaml:"enrich" mapstructure:"enrich"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Citations   CitationsConfig   `yaml:"citations" mapstructure:"citations"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LookupConfig configures the fact-lookup collaborator client
type LookupConfig struct {
	APIKey            string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Model             string `yaml:"model" mapstructure:"model"`
	BaseURL           string `yaml:"base_url" mapstructure:"base_url"`
	Locale            string `yaml:"locale" mapstructure:"locale"` // Preferred data locale named in lookup prompts
	TimeoutSeconds    int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
	Burst             int    `yaml:"burst" mapstructure:"burst"`
}

// ScoringConfig configures the statistic priority policy
type ScoringConfig struct {
	LocaleKeywords []string `yaml:"locale_keywords" mapstructure:"locale_keywords"`
}

// ChartConfig configures chart embed rendering
type ChartConfig struct {
	ScriptURL string `yaml:"script_url" mapstructure:"script_url"`
}

// EnrichConfig configures enrichment mode
type EnrichConfig struct {
	MaxStatistics int           `yaml:"max_statistics" mapstructure:"max_statistics"`
	RequestDelay  time.Duration `yaml:"request_delay" mapstructure:"request_delay"`
}

// CacheConfig configures the lookup-response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// CitationsConfig configures citation URL validation
type CitationsConfig struct {
	Check     bool          `yaml:"check" mapstructure:"check"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Workers   int           `yaml:"workers" mapstructure:"workers"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		Lookup: LookupConfig{
			Model:             "sonar",
			BaseURL:           "https://api.perplexity.ai",
			Locale:            "Sydney, Australia",
			TimeoutSeconds:    30,
			RequestsPerMinute: 50,
			Burst:             5,
		},
		Scoring: ScoringConfig{
			LocaleKeywords: []string{"sydney", "australia"},
		},
		Chart: ChartConfig{
			ScriptURL: "https://cdn.jsdelivr.net/npm/chart.js@3.9.1/dist/chart.min.js",
		},
		Enrich: EnrichConfig{
			MaxStatistics: 8,
			RequestDelay:  1200 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(home, ".statgraft", "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Citations: CitationsConfig{
			Check:     false,
			Timeout:   10 * time.Second,
			Workers:   10,
			UserAgent: "Statgraft/0.2 (+https://github.com/statgraft/statgraft)",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
