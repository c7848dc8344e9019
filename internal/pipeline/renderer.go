package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lawbrief/lawbrief/internal/model"
	"github.com/lawbrief/lawbrief/internal/risk"
)

// Renderer writes analysis reports as JSON and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. includeFooter controls the trailing
// attribution line in Markdown output.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(r.Markdown(report)), 0o644)
}

// Markdown renders the report body.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	title := "Contract Analysis"
	if report.SourcePath != "" {
		title = fmt.Sprintf("Contract Analysis: %s", filepath.Base(report.SourcePath))
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))

	if report.ExecutiveSummary != "" {
		b.WriteString("## Executive Summary\n\n")
		b.WriteString(report.ExecutiveSummary)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## Risk: %s (%.3f)\n\n", report.Risk.ContractRiskLevel, report.Risk.ContractRiskScore)
	fmt.Fprintf(&b, "| Level | Clauses |\n|---|---|\n")
	fmt.Fprintf(&b, "| High | %d |\n", report.Risk.Distribution.High)
	fmt.Fprintf(&b, "| Medium | %d |\n", report.Risk.Distribution.Medium)
	fmt.Fprintf(&b, "| Low | %d |\n\n", report.Risk.Distribution.Low)

	if len(report.Risk.TopRisky) > 0 {
		b.WriteString("### Top Risky Clauses\n\n")
		for _, cr := range report.Risk.TopRisky {
			fmt.Fprintf(&b, "- **Clause %d** (%s, %.3f)", cr.ClauseID, cr.RiskLevel, cr.RiskScore)
			if len(cr.MatchedTerms) > 0 {
				phrases := make([]string, 0, len(cr.MatchedTerms))
				for _, t := range cr.MatchedTerms {
					phrases = append(phrases, risk.PhraseForTerm(t))
				}
				fmt.Fprintf(&b, ": %s", strings.Join(phrases, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		b.WriteString("\n")
	}

	if report.Summary.ShortSummary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(report.Summary.ShortSummary)
		b.WriteString("\n\n")
	}
	if report.Summary.LongSummary != "" && report.Summary.LongSummary != report.Summary.ShortSummary {
		b.WriteString("### Detailed Summary\n\n")
		b.WriteString(report.Summary.LongSummary)
		b.WriteString("\n\n")
	}

	clauseSummaries := make(map[int]string, len(report.Summary.PerClauseSummaries))
	for _, cs := range report.Summary.PerClauseSummaries {
		clauseSummaries[cs.ClauseID] = cs.Summary
	}

	b.WriteString("## Clauses\n\n")
	for _, clause := range report.Clauses {
		heading := clause.Type.Display()
		if clause.Title != "" {
			heading = fmt.Sprintf("%s (%s)", clause.Title, clause.Type.Display())
		}
		fmt.Fprintf(&b, "### %d. %s\n\n", clause.ID, heading)
		fmt.Fprintf(&b, "Confidence: %.3f\n\n", clause.Confidence)
		if summary := clauseSummaries[clause.ID]; summary != "" {
			fmt.Fprintf(&b, "%s\n\n", summary)
		}
		if len(clause.Entities) > 0 {
			parts := make([]string, 0, len(clause.Entities))
			for _, ent := range clause.Entities {
				parts = append(parts, fmt.Sprintf("%s (%s)", ent.Text, ent.Label))
			}
			fmt.Fprintf(&b, "Entities: %s\n\n", strings.Join(parts, ", "))
		}
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by lawbrief\n")
	}

	return b.String()
}

// RenderSummary prints a short result overview to stdout.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n=== Analysis Complete ===\n")
	if report.SourcePath != "" {
		fmt.Printf("Source: %s\n", report.SourcePath)
	}
	fmt.Printf("Clauses: %d\n", len(report.Clauses))
	fmt.Printf("Risk: %s (%.3f)\n", report.Risk.ContractRiskLevel, report.Risk.ContractRiskScore)
	fmt.Printf("High: %d, Medium: %d, Low: %d\n",
		report.Risk.Distribution.High,
		report.Risk.Distribution.Medium,
		report.Risk.Distribution.Low)
	if len(report.Warnings) > 0 {
		fmt.Printf("Warnings: %d\n", len(report.Warnings))
	}
}

// RenderReport renders the report to the requested outputs and prints the
// stdout overview.
func (a *Analyzer) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := a.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := a.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	a.renderer.RenderSummary(report)
	return nil
}
