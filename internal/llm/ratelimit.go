package llm

import "context"

// Waiter gates calls under a shared rate limit, keyed by provider.
type Waiter interface {
	Wait(ctx context.Context, key string) error
}

// Limited wraps every capability of a client with rate limiting. Each model
// call first waits for clearance under the client's provider key.
func Limited(c *Client, w Waiter) *Client {
	out := &Client{ProviderName: c.ProviderName}
	if c.Embedder != nil {
		out.Embedder = &limitedEmbedder{inner: c.Embedder, w: w, key: c.ProviderName}
	}
	if c.Condenser != nil {
		out.Condenser = &limitedCondenser{inner: c.Condenser, w: w, key: c.ProviderName}
	}
	if c.Tagger != nil {
		out.Tagger = &limitedTagger{inner: c.Tagger, w: w, key: c.ProviderName}
	}
	return out
}

type limitedEmbedder struct {
	inner Embedder
	w     Waiter
	key   string
}

func (l *limitedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := l.w.Wait(ctx, l.key); err != nil {
		return nil, err
	}
	return l.inner.Embed(ctx, texts)
}

type limitedCondenser struct {
	inner Condenser
	w     Waiter
	key   string
}

func (l *limitedCondenser) Condense(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	if err := l.w.Wait(ctx, l.key); err != nil {
		return "", err
	}
	return l.inner.Condense(ctx, text, maxLength, minLength)
}

type limitedTagger struct {
	inner Tagger
	w     Waiter
	key   string
}

func (l *limitedTagger) Tag(ctx context.Context, text string) ([]Span, error) {
	if err := l.w.Wait(ctx, l.key); err != nil {
		return nil, err
	}
	return l.inner.Tag(ctx, text)
}
