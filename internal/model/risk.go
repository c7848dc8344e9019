package model

// RiskLevel is the categorical risk banding for clauses and whole contracts.
type RiskLevel string

const (
	RiskLow     RiskLevel = "Low"
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
	RiskUnknown RiskLevel = "Unknown" // aggregation failed; score is meaningless
)

// ClauseRisk is the risk assessment for a single clause. The four sub-scores
// are kept alongside the fused score so every result is auditable.
type ClauseRisk struct {
	ClauseID  int       `json:"clause_id"`
	RiskScore float64   `json:"risk_score"`
	RiskLevel RiskLevel `json:"risk_level"`

	// MatchedTerms holds the lexicon keys that matched, in lexicon order.
	MatchedTerms []string `json:"matched_terms"`

	KeywordScore    float64 `json:"keyword_score"`
	SimilarityScore float64 `json:"similarity_score"`
	LengthFactor    float64 `json:"length_factor"`
	TypeBoost       float64 `json:"type_boost"`
}

// RiskDistribution counts clauses per risk level.
type RiskDistribution struct {
	Low    int `json:"Low"`
	Medium int `json:"Medium"`
	High   int `json:"High"`
}

// ContractRiskSummary aggregates all clause risks for one document.
type ContractRiskSummary struct {
	ClauseRisks       []ClauseRisk     `json:"clause_risks"`
	ContractRiskScore float64          `json:"contract_risk_score"`
	ContractRiskLevel RiskLevel        `json:"contract_risk_level"`
	Distribution      RiskDistribution `json:"risk_distribution"`

	// TopRisky holds the highest-scoring clauses (at most five), stable on
	// ties so equal scores keep original clause order.
	TopRisky []ClauseRisk `json:"top_risky_clauses"`

	TotalClauses    int `json:"total_clauses"`
	HighRiskCount   int `json:"high_risk_count"`
	MediumRiskCount int `json:"medium_risk_count"`
	LowRiskCount    int `json:"low_risk_count"`
}

// UnknownRiskSummary is the well-defined fallback when aggregation fails:
// report rendering always has a summary shape to work with.
func UnknownRiskSummary() ContractRiskSummary {
	return ContractRiskSummary{
		ClauseRisks:       []ClauseRisk{},
		ContractRiskScore: 0.0,
		ContractRiskLevel: RiskUnknown,
		TopRisky:          []ClauseRisk{},
	}
}
