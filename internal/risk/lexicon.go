package risk

import (
	"regexp"
	"strings"

	"github.com/lawbrief/lawbrief/internal/model"
)

// lexiconEntry is one weighted risk pattern. Term is the stored key for
// MatchedTerms (the pattern with word-boundary markers stripped, kept for
// behavioral parity with historical reports); Phrase is the canonical
// human-readable form used in rendered reports.
type lexiconEntry struct {
	Term   string
	Phrase string
	Weight float64
	re     *regexp.Regexp
}

func entry(pattern, phrase string, weight float64) lexiconEntry {
	return lexiconEntry{
		Term:   strings.ReplaceAll(pattern, `\b`, ""),
		Phrase: phrase,
		Weight: weight,
		re:     regexp.MustCompile(`(?i)` + pattern),
	}
}

// riskLexicon is the fixed table of weighted risk phrases. Order matters:
// MatchedTerms reports matches in this order.
var riskLexicon = []lexiconEntry{
	entry(`\bindemnif(y|ication|ies)?\b`, "indemnification", 1.0),
	entry(`\bliquidated damages\b`, "liquidated damages", 0.9),
	entry(`\blimit(ed)? liability\b`, "limited liability", 0.9),
	entry(`\bunlimited liability\b`, "unlimited liability", 1.0),
	entry(`\bexclusive jurisdiction\b`, "exclusive jurisdiction", 0.6),
	entry(`\bwithout liability\b`, "without liability", 0.8),
	entry(`\bautomatic renewal\b`, "automatic renewal", 0.7),
	entry(`\bnon[- ]refundable\b`, "non-refundable", 0.6),
	entry(`\birrevocable\b`, "irrevocable", 0.6),
	entry(`\bperpetual\b`, "perpetual", 0.7),
	entry(`\bwaive( right(s)?)?\b`, "waiver of rights", 0.8),
	entry(`\bhold harmless\b`, "hold harmless", 1.0),
	entry(`\bas is\b`, "as is", 0.5),
	entry(`\bno warranty\b`, "no warranty", 0.7),
	entry(`\bfinal sale\b`, "final sale", 0.5),
	entry(`\bbinding arbitration\b`, "binding arbitration", 0.7),
	entry(`\bclass action waiver\b`, "class action waiver", 0.9),
	entry(`\battorney('s|s)? fees?\b`, "attorney fees", 0.5),
	entry(`\bconsequential damages\b`, "consequential damages", 0.8),
	entry(`\bpunitive damages\b`, "punitive damages", 0.9),
	entry(`\bspecific performance\b`, "specific performance", 0.6),
	entry(`\bpenalt(y|ies)\b`, "penalty", 0.7),
	entry(`\bforfeit\b`, "forfeiture", 0.6),
	entry(`\bbreach\b`, "breach", 0.5),
	entry(`\bdefault\b`, "default", 0.5),
}

// riskyExamples are canonical high-risk sentences, embedded once at startup
// for the semantic similarity signal.
var riskyExamples = []string{
	"The contractor shall indemnify and hold harmless the company from any claims or damages without limitation.",
	"This agreement automatically renews for successive terms unless terminated with 90 days notice.",
	"All fees are non-refundable and final upon payment regardless of termination.",
	"The company may terminate this agreement without notice for any reason or no reason.",
	"Contractor waives all rights to claim consequential or punitive damages.",
	"All disputes must be resolved through binding arbitration with no class action rights.",
	"Contractor assumes unlimited liability for any breach of confidentiality provisions.",
}

// typeWeights boosts clause risk by category. Categories absent from the
// table contribute nothing.
var typeWeights = map[model.ClauseType]float64{
	model.ClauseLiability:         1.0,
	model.ClauseDisputeResolution: 0.8,
	model.ClauseTermination:       0.7,
	model.ClauseRenewal:           0.6,
	model.ClauseConfidentiality:   0.5,
	model.ClausePayment:           0.4,
}

// PhraseForTerm returns the canonical phrase for a stored matched-term key,
// or the key itself when unknown.
func PhraseForTerm(term string) string {
	for _, e := range riskLexicon {
		if e.Term == term {
			return e.Phrase
		}
	}
	return term
}
