package model

import "time"

// Report is the complete analysis of one contract document. It is a
// self-contained value: nothing in it is shared across documents.
type Report struct {
	SourcePath string    `json:"source_path"`
	AnalyzedAt time.Time `json:"analyzed_at"`

	Clauses []ClassifiedClause  `json:"clauses"`
	Risk    ContractRiskSummary `json:"risk"`
	Summary DocumentSummary     `json:"summary"`

	ExecutiveSummary string   `json:"executive_summary,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`

	// Warnings records per-clause degradations (failed embedding calls,
	// summarizer fallbacks) that did not abort the run.
	Warnings []string `json:"warnings,omitempty"`
}

// DocumentSummary holds the summarizer output for a document.
type DocumentSummary struct {
	ShortSummary       string          `json:"short_summary"`
	LongSummary        string          `json:"long_summary"`
	PerClauseSummaries []ClauseSummary `json:"per_clause_summaries,omitempty"`
}

// ClauseSummary is a condensed rendering of a single clause.
type ClauseSummary struct {
	ClauseID   int        `json:"clause_id"`
	ClauseType ClauseType `json:"clause_type"`
	Summary    string     `json:"summary"`
}
