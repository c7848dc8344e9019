package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/lawbrief/lawbrief/internal/llm"
	"github.com/lawbrief/lawbrief/internal/model"
	"github.com/lawbrief/lawbrief/internal/util"
)

// Fusion thresholds. These values are empirically tuned; changing any of
// them changes classification on real contracts, so they are named here
// rather than inlined.
const (
	// KeywordFusionThreshold is the keyword score needed before keyword and
	// semantic signals compete head-to-head.
	KeywordFusionThreshold = 0.3

	// SemanticFusionThreshold is the semantic score needed for the same.
	SemanticFusionThreshold = 0.65

	// SemanticOnlyThreshold lets a strong semantic match win outright when
	// the combined rule did not fire.
	SemanticOnlyThreshold = 0.7
)

// Classifier assigns clause categories by fusing a keyword-count signal with
// embedding similarity against per-category template sentences. The template
// embeddings are computed once at construction and reused for every clause.
//
// The keyword score is intentionally not capped before comparison: highly
// repetitive text can push it past 1.0, and that raw value carries through
// to the reported confidence.
type Classifier struct {
	embedder  llm.Embedder
	templates [][]float32 // indexed like model.ClauseTypes
}

// NewClassifier embeds the category templates and returns a ready classifier.
// A failure here is fatal: the pipeline cannot classify without exemplars.
func NewClassifier(ctx context.Context, embedder llm.Embedder) (*Classifier, error) {
	texts := make([]string, len(model.ClauseTypes))
	for i, t := range model.ClauseTypes {
		texts[i] = templateClauses[t]
	}

	templates, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed category templates: %w", err)
	}
	if len(templates) != len(model.ClauseTypes) {
		return nil, fmt.Errorf("expected %d template embeddings, got %d", len(model.ClauseTypes), len(templates))
	}

	return &Classifier{
		embedder:  embedder,
		templates: templates,
	}, nil
}

// Classify returns the clause category and confidence for a text. A non-nil
// error reports a degraded result (embedding failed, keyword-only decision),
// never an unusable one: the returned type and confidence are always valid.
func (c *Classifier) Classify(ctx context.Context, text string) (model.ClauseType, float64, error) {
	bestKeyword, kwScore := c.keywordScore(text)

	bestSemantic, semScore, embedErr := c.semanticScore(ctx, text)
	if embedErr != nil {
		embedErr = fmt.Errorf("clause embedding failed, keyword-only classification: %w", embedErr)
	}

	var final model.ClauseType
	switch {
	case kwScore > KeywordFusionThreshold && semScore > SemanticFusionThreshold:
		// Both signals are live: the higher raw score wins, keyword on ties.
		if kwScore >= semScore {
			final = bestKeyword
		} else {
			final = bestSemantic
		}
	case semScore > SemanticOnlyThreshold:
		final = bestSemantic
	default:
		final = bestKeyword
	}

	if kwScore == 0 && final == bestKeyword {
		// No keyword evidence at all and semantic didn't clear its bar.
		final = model.ClauseUnclassified
	}

	confidence := kwScore
	if semScore > confidence {
		confidence = semScore
	}

	return final, util.Round3(confidence), embedErr
}

// keywordScore computes the per-category keyword signal and returns the best
// category with its raw (uncapped) score.
func (c *Classifier) keywordScore(text string) (model.ClauseType, float64) {
	lower := strings.ToLower(text)

	best := model.ClauseTypes[0]
	bestScore := -1.0

	for _, clauseType := range model.ClauseTypes {
		keywords := clauseKeywords[clauseType]
		count := 0
		for _, k := range keywords {
			count += strings.Count(lower, k)
		}
		score := float64(count) / float64(len(keywords))
		if score > bestScore {
			best = clauseType
			bestScore = score
		}
	}

	return best, bestScore
}

// semanticScore embeds the clause and returns the closest template category
// with its cosine similarity. On embedding failure both scores degrade to
// zero and the error is reported for logging.
func (c *Classifier) semanticScore(ctx context.Context, text string) (model.ClauseType, float64, error) {
	vectors, err := c.embedder.Embed(ctx, []string{text})
	if err != nil {
		return model.ClauseUnclassified, 0, err
	}
	if len(vectors) == 0 {
		return model.ClauseUnclassified, 0, fmt.Errorf("embedder returned no vector")
	}

	best := model.ClauseTypes[0]
	bestScore := -1.0

	for i, clauseType := range model.ClauseTypes {
		score := util.Cosine(vectors[0], c.templates[i])
		if score > bestScore {
			best = clauseType
			bestScore = score
		}
	}

	return best, bestScore, nil
}
