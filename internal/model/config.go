package model

import "time"

// Config holds all runtime configuration. Values are resolved in priority
// order: CLI flags, MEESCHECK_* environment variables, the config file at
// ~/.meescheck/config.yaml, then these defaults.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
}

// HTTPConfig controls fetching certificates from the public EPC register.
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent         string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second"`
	RespectRobots     bool          `yaml:"respect_robots" json:"respect_robots"`
	ProxyHTTP         string        `yaml:"proxy_http" json:"proxy_http"`
	ProxyHTTPS        string        `yaml:"proxy_https" json:"proxy_https"`
}

// CacheConfig controls extraction-result caching.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// LLMConfig controls the optional plain-English summary.
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai", "" disables
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
	TimeoutS  int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "meescheck/0.1 (+https://github.com/meescheck/meescheck)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 1,
			RespectRobots:     true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			MaxTokens: 800,
			TimeoutS:  30,
		},
	}
}
