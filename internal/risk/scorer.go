package risk

import (
	"context"
	"fmt"
	"sort"

	"github.com/lawbrief/lawbrief/internal/llm"
	"github.com/lawbrief/lawbrief/internal/model"
	"github.com/lawbrief/lawbrief/internal/util"
)

// Scoring constants. These are tuned values; every one of them shifts risk
// levels on real contracts, so they live here under names instead of inline.
const (
	// keywordNormalizer divides the summed lexicon weights before capping.
	keywordNormalizer = 5.0

	// strongWeight marks a lexicon entry as a strong signal; two or more
	// strong matches together earn strongPairBoost.
	strongWeight    = 0.8
	strongPairBoost = 0.1

	// similarityBoostAbove adds similarityBoost to very close matches
	// against the risky exemplars.
	similarityBoostAbove = 0.75
	similarityBoost      = 0.05

	// Length factor saturates at 1.0 for clauses of
	// lengthSaturation*lengthCeiling (600) characters or more.
	lengthSaturation = 300.0
	lengthCeiling    = 2.0

	// Fusion weights.
	keywordWeight    = 0.5
	similarityWeight = 0.3
	lengthWeight     = 0.1
	typeWeight       = 0.1

	// liabilityEmphasis is the extra boost for the historically
	// highest-stakes category.
	liabilityEmphasis = 0.1

	// Level thresholds: score < lowBelow is Low, < mediumBelow is Medium,
	// anything else High.
	lowBelow    = 0.3
	mediumBelow = 0.6

	// highClauseElevation raises the document mean when any single clause
	// is High: one severe clause should visibly raise perceived risk even
	// when diluted by many benign ones.
	highClauseElevation = 0.1

	// topRiskyCount bounds the top-clauses list in the summary.
	topRiskyCount = 5
)

// Scorer computes per-clause and document-level risk. The risky-exemplar
// embeddings are computed once at construction and shared across documents.
type Scorer struct {
	embedder  llm.Embedder
	exemplars [][]float32
}

// NewScorer embeds the risky exemplars and returns a ready scorer. Failure
// here is fatal at startup.
func NewScorer(ctx context.Context, embedder llm.Embedder) (*Scorer, error) {
	vectors, err := embedder.Embed(ctx, riskyExamples)
	if err != nil {
		return nil, fmt.Errorf("embed risky exemplars: %w", err)
	}
	if len(vectors) != len(riskyExamples) {
		return nil, fmt.Errorf("expected %d exemplar embeddings, got %d", len(riskyExamples), len(vectors))
	}

	exemplars := make([][]float32, len(vectors))
	for i, v := range vectors {
		exemplars[i] = util.Normalize(v)
	}

	return &Scorer{
		embedder:  embedder,
		exemplars: exemplars,
	}, nil
}

// ScoreClause assesses one clause. A non-nil error reports degradation (the
// similarity signal defaulted to zero after an embedding failure); the
// returned ClauseRisk is always valid and the caller should keep going.
func (s *Scorer) ScoreClause(ctx context.Context, clause model.ClassifiedClause) (model.ClauseRisk, error) {
	keywordScore, matched := s.keywordScore(clause.Text)

	similarityScore, simErr := s.similarityScore(ctx, clause.Text)
	if simErr != nil {
		simErr = fmt.Errorf("clause %d: similarity degraded to 0: %w", clause.ID, simErr)
	}

	lengthFactor := float64(len(clause.Text)) / lengthSaturation
	if lengthFactor > lengthCeiling {
		lengthFactor = lengthCeiling
	}
	lengthFactor /= lengthCeiling

	typeBoost := typeWeights[clause.Type]
	if clause.Type == model.ClauseLiability {
		typeBoost = capOne(typeBoost + liabilityEmphasis)
	}

	rawScore := keywordWeight*keywordScore +
		similarityWeight*similarityScore +
		lengthWeight*lengthFactor +
		typeWeight*typeBoost

	return model.ClauseRisk{
		ClauseID:        clause.ID,
		RiskScore:       rawScore,
		RiskLevel:       scoreToLevel(rawScore),
		MatchedTerms:    matched,
		KeywordScore:    keywordScore,
		SimilarityScore: similarityScore,
		LengthFactor:    lengthFactor,
		TypeBoost:       typeBoost,
	}, simErr
}

// Aggregate combines clause risks into a document summary. An empty input
// yields a zero-score Low summary, not an error.
func (s *Scorer) Aggregate(risks []model.ClauseRisk) model.ContractRiskSummary {
	var total float64
	var dist model.RiskDistribution

	for _, r := range risks {
		total += r.RiskScore
		switch r.RiskLevel {
		case model.RiskLow:
			dist.Low++
		case model.RiskMedium:
			dist.Medium++
		case model.RiskHigh:
			dist.High++
		}
	}

	mean := 0.0
	if len(risks) > 0 {
		mean = total / float64(len(risks))
	}

	// One High clause visibly elevates the whole contract.
	if dist.High > 0 {
		mean = capOne(mean + highClauseElevation)
	}

	top := make([]model.ClauseRisk, len(risks))
	copy(top, risks)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].RiskScore > top[j].RiskScore
	})
	if len(top) > topRiskyCount {
		top = top[:topRiskyCount]
	}

	return model.ContractRiskSummary{
		ClauseRisks:       risks,
		ContractRiskScore: mean,
		ContractRiskLevel: scoreToLevel(mean),
		Distribution:      dist,
		TopRisky:          top,
		TotalClauses:      len(risks),
		HighRiskCount:     dist.High,
		MediumRiskCount:   dist.Medium,
		LowRiskCount:      dist.Low,
	}
}

// keywordScore scans the clause against the lexicon. Each pattern counts
// once regardless of how often it matches; two or more strong matches earn
// an extra boost.
func (s *Scorer) keywordScore(text string) (float64, []string) {
	matched := []string{}
	totalWeight := 0.0
	strongHits := 0

	for _, e := range riskLexicon {
		if e.re.MatchString(text) {
			matched = append(matched, e.Term)
			totalWeight += e.Weight
			if e.Weight >= strongWeight {
				strongHits++
			}
		}
	}

	score := totalWeight / keywordNormalizer
	if score > 1.0 {
		score = 1.0
	}
	if strongHits >= 2 {
		score = capOne(score + strongPairBoost)
	}

	return score, matched
}

// similarityScore embeds the clause and takes the maximum cosine similarity
// against the risky exemplars, boosting very strong matches. Embedding
// failure degrades the score to zero for this clause only.
func (s *Scorer) similarityScore(ctx context.Context, text string) (float64, error) {
	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return 0.0, err
	}
	if len(vectors) == 0 {
		return 0.0, fmt.Errorf("embedder returned no vector")
	}

	maxSim := 0.0
	for _, exemplar := range s.exemplars {
		if sim := util.Cosine(vectors[0], exemplar); sim > maxSim {
			maxSim = sim
		}
	}

	if maxSim > similarityBoostAbove {
		maxSim = capOne(maxSim + similarityBoost)
	}

	return maxSim, nil
}

func scoreToLevel(score float64) model.RiskLevel {
	switch {
	case score < lowBelow:
		return model.RiskLow
	case score < mediumBelow:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

func capOne(x float64) float64 {
	if x > 1.0 {
		return 1.0
	}
	return x
}
