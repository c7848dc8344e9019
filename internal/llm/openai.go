package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// CondenseCharLimit approximates the condensation model's input window in
// characters. Inputs past this limit are rejected so callers chunk instead
// of silently truncating.
const CondenseCharLimit = 4000

// ErrInputTooLong is returned by Condense when the input exceeds the model's
// input window. Callers should pre-chunk and retry.
var ErrInputTooLong = errors.New("input exceeds condensation length limit")

// OpenAIClient implements Embedder, Condenser, and Tagger against the OpenAI
// API (or any OpenAI-compatible endpoint, e.g. a local Ollama server).
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient creates a new OpenAI-backed client.
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured and reachable.
func (c *OpenAIClient) IsAvailable(ctx context.Context) bool {
	_, err := c.client.ListModels(ctx)
	return err == nil
}

// Embed returns one embedding vector per input text, in input order.
func (c *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddingModel := openai.EmbeddingModel(c.config.EmbeddingModel)
	if c.config.EmbeddingModel == "" {
		embeddingModel = openai.SmallEmbedding3
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: embeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// Condense produces an abstractive summary of text between minLength and
// maxLength words.
func (c *OpenAIClient) Condense(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	if len(text) > CondenseCharLimit {
		return "", ErrInputTooLong
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	prompt := fmt.Sprintf(
		"Summarize the following contract text in %d to %d words. Preserve legally significant obligations, amounts, and deadlines. Return only the summary.\n\n%s",
		minLength, maxLength, text)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel(),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a contract analyst who writes faithful, compact summaries of legal text.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxLength * 2,
		Temperature: 0.3, // focused, factual output
	})
	if err != nil {
		return "", fmt.Errorf("condense: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("condense: no response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Tag extracts typed entity spans from text. The model is asked for a JSON
// array; anything unparseable is an error so the caller can degrade.
func (c *OpenAIClient) Tag(ctx context.Context, text string) ([]Span, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	prompt := fmt.Sprintf(`Extract named entities from the contract text below.
Use labels: ORG, PERSON, DATE, MONEY, GPE, TIME, PERCENT, QUANTITY, LAW.
Return a JSON array of objects with keys "text", "label", "start", "end",
where start and end are character offsets into the given text. Return only JSON.

Text:
%s`, text)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel(),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a precise named-entity tagger for legal documents.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("tag: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("tag: no response choices")
	}

	raw := stripCodeFence(resp.Choices[0].Message.Content)

	var spans []Span
	if err := json.Unmarshal([]byte(raw), &spans); err != nil {
		return nil, fmt.Errorf("tag: parse response: %w", err)
	}
	return spans, nil
}

func (c *OpenAIClient) chatModel() string {
	if c.config.Model != "" {
		return c.config.Model
	}
	return openai.GPT4oMini
}

func (c *OpenAIClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// stripCodeFence removes a surrounding markdown code fence, which chat models
// add even when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
