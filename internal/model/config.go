package model

import "time"

// Config holds the complete verifact configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Extract     ExtractConfig     `yaml:"extract"`
	Cache       CacheConfig       `yaml:"cache"`
	Validate    ValidateConfig    `yaml:"validate"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the language-model oracle
type LLMConfig struct {
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // Never written to config files
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// SearchConfig configures the web evidence retriever
type SearchConfig struct {
	APIKey     string  `yaml:"-"` // Never written to config files
	BaseURL    string  `yaml:"base_url,omitempty"`
	Depth      string  `yaml:"depth"`       // Tavily search depth
	MaxResults int     `yaml:"max_results"` // Result cap per claim
	Timeout    int     `yaml:"timeout"`     // seconds
	RPS        float64 `yaml:"rps"`         // Outbound request rate during batch runs
	Burst      int     `yaml:"burst"`
}

// ExtractConfig configures claim extraction
type ExtractConfig struct {
	MaxChars int `yaml:"max_chars"` // Analysis prefix length for long documents
}

// CacheConfig configures the extracted-text cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ValidateConfig configures optional source-link validation
type ValidateConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"`
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"` // Documents processed in parallel by the batch command
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Search: SearchConfig{
			Depth:      "advanced",
			MaxResults: 5,
			Timeout:    30,
			RPS:        2,
			Burst:      4,
		},
		Extract: ExtractConfig{
			MaxChars: 8000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.verifact/cache at startup
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Validate: ValidateConfig{
			Enabled: false,
			Timeout: 10 * time.Second,
			Workers: 10,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
