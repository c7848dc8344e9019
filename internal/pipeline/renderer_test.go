package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lawbrief/lawbrief/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		SourcePath: "/contracts/msa.txt",
		AnalyzedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Clauses: []model.ClassifiedClause{
			{
				ClauseSpan: model.ClauseSpan{ID: 1, Text: "Contractor shall indemnify the company.", Title: "INDEMNIFICATION"},
				Type:       model.ClauseLiability,
				Confidence: 0.82,
				Entities: []model.Entity{
					{Text: "Acme Corp", Label: model.EntityOrganization, Start: 0, End: 9},
				},
			},
			{
				ClauseSpan: model.ClauseSpan{ID: 2, Text: "Payment is due in thirty days."},
				Type:       model.ClausePayment,
				Confidence: 0.5,
			},
		},
		Risk: model.ContractRiskSummary{
			ContractRiskScore: 0.62,
			ContractRiskLevel: model.RiskHigh,
			Distribution:      model.RiskDistribution{High: 1, Medium: 1},
			TopRisky: []model.ClauseRisk{
				{ClauseID: 1, RiskScore: 0.74, RiskLevel: model.RiskHigh, MatchedTerms: []string{"indemnif(y|ication|ies)?"}},
			},
			TotalClauses:  2,
			HighRiskCount: 1,
		},
		Summary: model.DocumentSummary{
			ShortSummary: "A services contract with a heavy indemnification clause.",
			LongSummary:  "A services contract with a heavy indemnification clause and standard payment terms.",
			PerClauseSummaries: []model.ClauseSummary{
				{ClauseID: 1, ClauseType: model.ClauseLiability, Summary: "Contractor indemnifies the company."},
			},
		},
		ExecutiveSummary: "The contract contains 2 clauses across 2 main categories.",
		Recommendations:  []string{"Review indemnification clauses - they may impose significant liability."},
		Warnings:         []string{"clause 2: entity extraction skipped: model unavailable"},
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r := NewRenderer(true)

	md := r.Markdown(sampleReport())

	for _, want := range []string{
		"# Contract Analysis: msa.txt",
		"## Executive Summary",
		"## Risk: High (0.620)",
		"| High | 1 |",
		"### Top Risky Clauses",
		"indemnification", // matched term rendered as its phrase
		"## Recommendations",
		"## Summary",
		"### 1. INDEMNIFICATION (Liability)",
		"Contractor indemnifies the company.",
		"Acme Corp (organization)",
		"### 2. Payment",
		"## Warnings",
		"Generated by lawbrief",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestRenderer_MarkdownNoFooter(t *testing.T) {
	r := NewRenderer(false)

	md := r.Markdown(sampleReport())
	if strings.Contains(md, "Generated by lawbrief") {
		t.Error("Footer rendered despite being disabled")
	}
}

func TestRenderer_RenderJSON(t *testing.T) {
	r := NewRenderer(true)
	path := filepath.Join(t.TempDir(), "out", "report.json")

	if err := r.RenderJSON(sampleReport(), path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read report: %v", err)
	}

	var decoded model.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if decoded.Risk.ContractRiskLevel != model.RiskHigh {
		t.Errorf("Risk level lost in round-trip: %s", decoded.Risk.ContractRiskLevel)
	}
	if len(decoded.Clauses) != 2 {
		t.Errorf("Expected 2 clauses after round-trip, got %d", len(decoded.Clauses))
	}
}
