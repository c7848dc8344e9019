package summarize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lawbrief/lawbrief/internal/llm"
	"github.com/lawbrief/lawbrief/internal/model"
	"github.com/lawbrief/lawbrief/internal/risk"
	"github.com/lawbrief/lawbrief/internal/segment"
)

// Mode selects the summarization strategy.
type Mode string

const (
	ModeAbstractive Mode = "abstractive"
	ModeExtractive  Mode = "extractive"
	ModeHybrid      Mode = "hybrid"
)

const (
	// Sentence counts for extractive summaries.
	shortSentences = 3
	longSentences  = 6

	// Word-length targets for abstractive summaries.
	shortMaxWords  = 128
	longMaxWords   = 256
	clauseMaxWords = 64

	// chunkMaxChars bounds chunks fed to the condenser; chunking respects
	// clause boundaries.
	chunkMaxChars = 3000

	// Words-per-chunk condensation targets.
	chunkMaxWords = 128
	chunkMinWords = 32

	// minSummarizableWords: anything shorter is returned unchanged, no
	// model call. Such inputs are already minimal.
	minSummarizableWords = 20
)

// ParseMode validates a mode string, defaulting to hybrid.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeAbstractive:
		return ModeAbstractive, nil
	case ModeExtractive:
		return ModeExtractive, nil
	case ModeHybrid, Mode(""):
		return ModeHybrid, nil
	default:
		return "", fmt.Errorf("unknown summary mode: %s (supported: abstractive, extractive, hybrid)", s)
	}
}

// Summarizer orchestrates document and clause summarization across
// abstractive, extractive, and hybrid strategies. A nil condenser disables
// abstractive strategies; extractive still works.
type Summarizer struct {
	embedder  llm.Embedder
	condenser llm.Condenser
}

// NewSummarizer creates a new summarizer.
func NewSummarizer(embedder llm.Embedder, condenser llm.Condenser) *Summarizer {
	return &Summarizer{
		embedder:  embedder,
		condenser: condenser,
	}
}

// strategy is one way to produce short and long document summaries. The
// orchestrator tries strategies in order and takes the first success;
// failures become warnings, not aborts. A strategy can succeed in degraded
// form and report how via warnings.
type strategy struct {
	name string
	run  func(ctx context.Context, text string) (short, long string, warnings []string, err error)
}

// Summarize produces short/long summaries of text in the given mode and,
// when clauses are supplied, a per-clause summary list. The returned
// warnings record every fallback taken.
func (s *Summarizer) Summarize(ctx context.Context, text string, mode Mode, clauses []model.ClassifiedClause) (model.DocumentSummary, []string) {
	text = segment.CleanText(text)

	var result model.DocumentSummary
	var warnings []string

	if wordCount(text) < minSummarizableWords {
		result.ShortSummary = text
		result.LongSummary = text
	} else {
		short, long, w := s.runStrategies(ctx, text, s.strategiesFor(mode))
		result.ShortSummary = short
		result.LongSummary = long
		warnings = append(warnings, w...)
	}

	for _, clause := range clauses {
		summary, w := s.summarizeClause(ctx, clause)
		result.PerClauseSummaries = append(result.PerClauseSummaries, summary)
		warnings = append(warnings, w...)
	}

	return result, warnings
}

// strategiesFor returns the ordered fallback chain for a mode.
func (s *Summarizer) strategiesFor(mode Mode) []strategy {
	abstractive := strategy{name: "abstractive", run: s.abstractiveSummaries}
	extractive := strategy{name: "extractive", run: s.extractiveSummaries}

	switch mode {
	case ModeExtractive:
		return []strategy{extractive}
	case ModeAbstractive, ModeHybrid:
		return []strategy{abstractive, extractive}
	default:
		return []strategy{abstractive, extractive}
	}
}

func (s *Summarizer) runStrategies(ctx context.Context, text string, chain []strategy) (string, string, []string) {
	var warnings []string

	for i, st := range chain {
		short, long, w, err := st.run(ctx, text)
		warnings = append(warnings, w...)
		if err == nil {
			return short, long, warnings
		}
		if i+1 < len(chain) {
			warnings = append(warnings, fmt.Sprintf("summarizer: %s failed, falling back to %s: %v", st.name, chain[i+1].name, err))
		} else {
			warnings = append(warnings, fmt.Sprintf("summarizer: %s failed with no fallback left: %v", st.name, err))
		}
	}

	// Every strategy failed; the first sentences are the last resort.
	return segment.FirstSentence(text), segment.FirstSentence(text), warnings
}

// extractiveSummaries ranks sentences by graph centrality and joins the top
// K, in original document order. Embedding failure degrades to the leading
// sentences rather than failing the strategy.
func (s *Summarizer) extractiveSummaries(ctx context.Context, text string) (string, string, []string, error) {
	var warnings []string

	short, err := s.keySentences(ctx, text, shortSentences)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("summarizer: sentence ranking degraded to leading sentences: %v", err))
	}
	long, err := s.keySentences(ctx, text, longSentences)
	if err != nil && len(warnings) == 0 {
		warnings = append(warnings, fmt.Sprintf("summarizer: sentence ranking degraded to leading sentences: %v", err))
	}

	return strings.Join(short, " "), strings.Join(long, " "), warnings, nil
}

func (s *Summarizer) abstractiveSummaries(ctx context.Context, text string) (string, string, []string, error) {
	short, err := s.abstractive(ctx, text, shortMaxWords)
	if err != nil {
		return "", "", nil, err
	}
	long, err := s.abstractive(ctx, text, longMaxWords)
	if err != nil {
		return "", "", nil, err
	}
	return short, long, nil, nil
}

// abstractive condenses text toward maxWords. Inputs within the condenser's
// limit go through directly; longer inputs are chunked along clause
// boundaries, condensed chunk by chunk, and re-condensed when the
// concatenation is still long. A failed second pass falls back to extractive
// summarization of the concatenation.
func (s *Summarizer) abstractive(ctx context.Context, text string, maxWords int) (string, error) {
	if s.condenser == nil {
		return "", fmt.Errorf("condensation capability unavailable")
	}

	if len(text) <= llm.CondenseCharLimit {
		return s.condenser.Condense(ctx, text, maxWords, maxWords/4)
	}

	chunks := segment.ChunkText(text, chunkMaxChars)
	summaries := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		summary, err := s.condenser.Condense(ctx, chunk, chunkMaxWords, chunkMinWords)
		if err != nil {
			// One bad chunk degrades to its first sentence.
			summary = segment.FirstSentence(chunk)
		}
		summaries = append(summaries, summary)
	}

	combined := strings.TrimSpace(strings.Join(summaries, " "))
	if wordCount(combined) <= maxWords/2 {
		return combined, nil
	}

	second, err := s.condenser.Condense(ctx, combined, maxWords, maxWords/4)
	if err == nil {
		return second, nil
	}

	sentences, _ := s.keySentences(ctx, combined, shortSentences)
	return strings.Join(sentences, " "), nil
}

// summarizeClause condenses one clause, falling back to its first sentence
// (or first 100 characters) when condensation fails.
func (s *Summarizer) summarizeClause(ctx context.Context, clause model.ClassifiedClause) (model.ClauseSummary, []string) {
	text := segment.CleanText(clause.Text)

	summary := text
	var warnings []string

	if wordCount(text) >= minSummarizableWords {
		if s.condenser == nil {
			summary = segment.FirstSentence(text)
		} else {
			condensed, err := s.condenser.Condense(ctx, text, clauseMaxWords, clauseMaxWords/4)
			if err != nil {
				summary = segment.FirstSentence(text)
				warnings = append(warnings, fmt.Sprintf("summarizer: clause %d condensation failed, using first sentence: %v", clause.ID, err))
			} else {
				summary = condensed
			}
		}
	}

	return model.ClauseSummary{
		ClauseID:   clause.ID,
		ClauseType: clause.Type,
		Summary:    summary,
	}, warnings
}

// ExecutiveSummary combines the clause overview with the risk summary into a
// few sentences of plain prose.
func ExecutiveSummary(clauses []model.ClassifiedClause, riskSummary model.ContractRiskSummary) string {
	var parts []string

	seen := make(map[string]bool)
	var types []string
	for _, c := range clauses {
		name := c.Type.Display()
		if !seen[name] {
			seen[name] = true
			types = append(types, name)
		}
	}
	sort.Strings(types)

	parts = append(parts, fmt.Sprintf("The contract contains %d clauses across %d main categories: %s.",
		len(clauses), len(types), strings.Join(types, ", ")))

	parts = append(parts, fmt.Sprintf("Overall risk level: %s. Distribution: %d high-risk, %d medium-risk, %d low-risk clauses.",
		riskSummary.ContractRiskLevel, riskSummary.HighRiskCount, riskSummary.MediumRiskCount, riskSummary.LowRiskCount))

	if len(riskSummary.TopRisky) > 0 {
		top := riskSummary.TopRisky[0]
		terms := top.MatchedTerms
		if len(terms) > 3 {
			terms = terms[:3]
		}
		phrases := make([]string, len(terms))
		for i, t := range terms {
			phrases[i] = risk.PhraseForTerm(t)
		}
		if len(phrases) > 0 {
			parts = append(parts, fmt.Sprintf("Highest-risk clause (ID %d) scored %.2f and includes: %s.",
				top.ClauseID, top.RiskScore, strings.Join(phrases, ", ")))
		}
	}

	return strings.Join(parts, " ")
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
