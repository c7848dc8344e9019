package model

// Config is the full process configuration, built once at startup from
// defaults, config file, environment, and flags (in ascending priority).
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Summary     SummaryConfig     `yaml:"summary"`
	Output      OutputConfig      `yaml:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig configures the embedding and condensation providers.
type LLMConfig struct {
	Provider       string `yaml:"provider"`        // "openai" or "ollama"
	Model          string `yaml:"model"`           // chat/condensation model
	EmbeddingModel string `yaml:"embedding_model"` // embedding model
	APIKey         string `yaml:"api_key,omitempty"`
	BaseURL        string `yaml:"base_url,omitempty"`
	Timeout        int    `yaml:"timeout"` // seconds, per model call
}

// SummaryConfig configures the summarizer orchestrator.
type SummaryConfig struct {
	Mode       string `yaml:"mode"`        // abstractive, extractive, or hybrid
	PerClause  bool   `yaml:"per_clause"`  // also condense each clause
	CacheTTL   int    `yaml:"cache_ttl"`   // embedding cache TTL in minutes
	CacheSweep int    `yaml:"cache_sweep"` // cache cleanup interval in minutes
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers        int     `yaml:"workers"`          // parallel documents in batch mode
	ModelCallsPerS float64 `yaml:"model_calls_per_s"` // rate limit on provider calls
	ModelCallBurst int     `yaml:"model_call_burst"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			Timeout:        30,
		},
		Summary: SummaryConfig{
			Mode:       "hybrid",
			PerClause:  true,
			CacheTTL:   60,
			CacheSweep: 10,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers:        4,
			ModelCallsPerS: 5,
			ModelCallBurst: 5,
		},
	}
}
