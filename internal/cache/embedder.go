package cache

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"github.com/lawbrief/lawbrief/internal/llm"
)

// Embedder wraps an llm.Embedder with a cache so repeated texts (exemplars,
// re-analyzed clauses) hit the model once per process.
type Embedder struct {
	inner llm.Embedder
	cache Cache
	model string
	ttl   time.Duration
}

// NewEmbedder creates a caching embedder. The model name scopes cache keys.
func NewEmbedder(inner llm.Embedder, cache Cache, embeddingModel string, ttl time.Duration) *Embedder {
	return &Embedder{
		inner: inner,
		cache: cache,
		model: embeddingModel,
		ttl:   ttl,
	}
}

// Embed returns one vector per text, serving cache hits locally and batching
// all misses into a single call to the wrapped embedder.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int

	for i, text := range texts {
		if data, ok := e.cache.Get(EmbeddingKey(e.model, text)); ok {
			if v, err := decodeVector(data); err == nil {
				vectors[i] = v
				continue
			}
			// Undecodable entry: treat as a miss and overwrite below.
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := e.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	for j, v := range fresh {
		vectors[missIdx[j]] = v
		if data, err := encodeVector(v); err == nil {
			_ = e.cache.Set(EmbeddingKey(e.model, missTexts[j]), data, e.ttl)
		}
	}

	return vectors, nil
}

func encodeVector(v []float32) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeVector(data []byte) ([]float32, error) {
	var v []float32
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
