package risk

import (
	"fmt"
	"strings"

	"github.com/lawbrief/lawbrief/internal/model"
)

// Recommendations generates actionable review guidance from a risk summary.
func Recommendations(summary model.ContractRiskSummary) []string {
	var recs []string

	if summary.ContractRiskLevel == model.RiskHigh {
		recs = append(recs, "HIGH overall contract risk - seek legal review before signing.")
	}

	if summary.HighRiskCount > 0 {
		recs = append(recs, fmt.Sprintf("%d high-risk clauses detected that need urgent attention.", summary.HighRiskCount))
	}

	top := summary.TopRisky
	if len(top) > 3 {
		top = top[:3]
	}
	for _, clauseRisk := range top {
		for _, term := range clauseRisk.MatchedTerms {
			switch {
			case strings.Contains(term, "indemnif"):
				recs = appendOnce(recs, "Review indemnification clauses - they may impose significant liability.")
			case strings.Contains(term, "automatic renewal"):
				recs = appendOnce(recs, "Check automatic renewal terms to ensure easy exit if needed.")
			case strings.Contains(term, "refundable"):
				recs = appendOnce(recs, "Non-refundable provisions may limit recourse on termination.")
			}
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Overall risk appears manageable - still review all clauses carefully.")
	}

	return recs
}

func appendOnce(recs []string, rec string) []string {
	for _, r := range recs {
		if r == rec {
			return recs
		}
	}
	return append(recs, rec)
}
