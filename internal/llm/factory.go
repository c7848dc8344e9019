package llm

import (
	"fmt"
	"strings"

	"github.com/lawbrief/lawbrief/internal/model"
)

// Client bundles the three model capabilities the pipeline consumes.
// A nil Condenser or Tagger means that capability is unavailable and the
// pipeline degrades; a nil Embedder is fatal at startup.
type Client struct {
	Embedder  Embedder
	Condenser Condenser
	Tagger    Tagger

	// ProviderName identifies the backing provider, used as the rate-limit key.
	ProviderName string
}

// NewClient creates the capability set for the configured provider.
func NewClient(config Config) (*Client, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		c, err := NewOpenAIClient(config)
		if err != nil {
			return nil, err
		}
		return &Client{Embedder: c, Condenser: c, Tagger: c, ProviderName: "openai"}, nil

	case "ollama":
		// Ollama exposes an OpenAI-compatible API under /v1; reuse the
		// OpenAI client against it. Ollama ignores the API key but the
		// client config requires one.
		baseURL := config.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = strings.TrimRight(baseURL, "/") + "/v1"
		}
		config.BaseURL = baseURL
		if config.APIKey == "" {
			config.APIKey = "ollama"
		}
		c, err := NewOpenAIClient(config)
		if err != nil {
			return nil, err
		}
		return &Client{Embedder: c, Condenser: c, Tagger: c, ProviderName: "ollama"}, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:       modelConfig.Provider,
		Model:          modelConfig.Model,
		EmbeddingModel: modelConfig.EmbeddingModel,
		APIKey:         modelConfig.APIKey,
		BaseURL:        modelConfig.BaseURL,
		Timeout:        modelConfig.Timeout,
	}
}
