package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores encoded embedding vectors keyed by EmbeddingKey.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// EmbeddingKey generates a cache key for a text embedded with a given model.
// The model name is part of the key so a model switch never serves stale
// vectors.
func EmbeddingKey(embeddingModel, text string) string {
	hash := sha256.Sum256([]byte(embeddingModel + "\x00" + text))
	return "lawbrief:v1:" + hex.EncodeToString(hash[:])
}
