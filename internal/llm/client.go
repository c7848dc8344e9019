package llm

import "context"

// Embedder converts texts into vectors for similarity comparison.
// Implementations must support batch input and be deterministic for a fixed
// model version. Safe for concurrent use.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Condenser produces an abstractive summary of a text. It may fail when the
// input exceeds the model's length limit; callers are expected to pre-chunk.
type Condenser interface {
	Condense(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// Span is one tagged entity span returned by a Tagger. Offsets are relative
// to the tagged text. Labels are the tagger's own vocabulary; the entity
// extractor filters and normalizes them.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Tagger extracts typed entity spans from text.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]Span, error)
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai" or "ollama"
	Provider string

	// Model is the chat model used for condensation and tagging.
	Model string

	// EmbeddingModel is the model used for Embed calls.
	EmbeddingModel string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (e.g. a local Ollama server).
	BaseURL string

	// Timeout per model call, in seconds.
	Timeout int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:       "openai",
		Model:          "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		Timeout:        30,
	}
}
