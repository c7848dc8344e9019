package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lawbrief/lawbrief/internal/cache"
	"github.com/lawbrief/lawbrief/internal/classify"
	"github.com/lawbrief/lawbrief/internal/entity"
	"github.com/lawbrief/lawbrief/internal/ingest"
	"github.com/lawbrief/lawbrief/internal/llm"
	"github.com/lawbrief/lawbrief/internal/model"
	"github.com/lawbrief/lawbrief/internal/risk"
	"github.com/lawbrief/lawbrief/internal/segment"
	"github.com/lawbrief/lawbrief/internal/summarize"
	"github.com/lawbrief/lawbrief/internal/worker"
)

// Analyzer orchestrates the complete contract analysis: ingest, segment,
// classify, extract entities, score risk, summarize. It is safe for
// concurrent use: all mutable state is per-call, and the model capabilities
// and exemplar embeddings are shared read-only.
type Analyzer struct {
	config     *model.Config
	segmenter  *segment.Segmenter
	classifier *classify.Classifier
	entities   *entity.Extractor
	scorer     *risk.Scorer
	summarizer *summarize.Summarizer
	mode       summarize.Mode
	renderer   *Renderer
}

// NewAnalyzer builds the analyzer for the given configuration. Provider
// setup and exemplar embedding happen here, once: a failure is fatal before
// any document is accepted.
func NewAnalyzer(ctx context.Context, cfg *model.Config) (*Analyzer, error) {
	client, err := llm.NewClient(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}

	limiter := worker.NewLimiter(cfg.Concurrency.ModelCallsPerS, cfg.Concurrency.ModelCallBurst)
	client = llm.Limited(client, limiter)

	memCache := cache.NewMemoryCache(
		time.Duration(cfg.Summary.CacheTTL)*time.Minute,
		time.Duration(cfg.Summary.CacheSweep)*time.Minute,
	)
	embedder := cache.NewEmbedder(client.Embedder, memCache, cfg.LLM.EmbeddingModel, time.Duration(cfg.Summary.CacheTTL)*time.Minute)

	classifier, err := classify.NewClassifier(ctx, embedder)
	if err != nil {
		return nil, fmt.Errorf("initialize classifier: %w", err)
	}

	scorer, err := risk.NewScorer(ctx, embedder)
	if err != nil {
		return nil, fmt.Errorf("initialize risk scorer: %w", err)
	}

	mode, err := summarize.ParseMode(cfg.Summary.Mode)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		config:     cfg,
		segmenter:  segment.NewSegmenter(),
		classifier: classifier,
		entities:   entity.NewExtractor(client.Tagger),
		scorer:     scorer,
		summarizer: summarize.NewSummarizer(embedder, client.Condenser),
		mode:       mode,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
	}, nil
}

// AnalyzeFile loads and analyzes one contract document.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	doc, err := ingest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return a.analyze(ctx, doc, path)
}

// AnalyzeText analyzes already-extracted contract text.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*model.Report, error) {
	return a.analyze(ctx, ingest.FromText(text), "")
}

func (a *Analyzer) analyze(ctx context.Context, doc *ingest.Document, sourcePath string) (*model.Report, error) {
	var warnings []string

	// 1. Segment into clause spans.
	spans := a.segmenter.Segment(doc.FullText)

	// 2. Classify each clause and extract its entities. Per-clause model
	// failures degrade that clause, never the document.
	clauses := make([]model.ClassifiedClause, 0, len(spans))
	for _, span := range spans {
		clauseType, confidence, err := a.classifier.Classify(ctx, span.Text)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("clause %d: %v", span.ID, err))
		}

		entities, err := a.entities.Extract(ctx, span.Text)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("clause %d: entity extraction skipped: %v", span.ID, err))
			entities = nil
		}

		clauses = append(clauses, model.ClassifiedClause{
			ClauseSpan: span,
			Type:       clauseType,
			Confidence: confidence,
			Entities:   entities,
		})
	}

	// 3. Score risk per clause, then aggregate.
	riskSummary := a.assessRisks(ctx, doc.FullText, clauses, &warnings)

	// 4. Summarize. Runs on the full text regardless of clause results.
	var summaryClauses []model.ClassifiedClause
	if a.config.Summary.PerClause {
		summaryClauses = clauses
	}
	summary, summaryWarnings := a.summarizer.Summarize(ctx, doc.FullText, a.mode, summaryClauses)
	warnings = append(warnings, summaryWarnings...)

	return &model.Report{
		SourcePath:       sourcePath,
		AnalyzedAt:       time.Now().UTC(),
		Clauses:          clauses,
		Risk:             riskSummary,
		Summary:          summary,
		ExecutiveSummary: summarize.ExecutiveSummary(clauses, riskSummary),
		Recommendations:  risk.Recommendations(riskSummary),
		Warnings:         warnings,
	}, nil
}

// assessRisks scores every clause and aggregates. A non-empty document that
// somehow produced zero clauses gets the well-defined Unknown summary so
// report rendering always has a shape to work with.
func (a *Analyzer) assessRisks(ctx context.Context, fullText string, clauses []model.ClassifiedClause, warnings *[]string) model.ContractRiskSummary {
	if len(clauses) == 0 {
		if strings.TrimSpace(fullText) != "" {
			*warnings = append(*warnings, "risk: no clauses extracted from non-empty document")
			return model.UnknownRiskSummary()
		}
		return a.scorer.Aggregate(nil)
	}

	risks := make([]model.ClauseRisk, 0, len(clauses))
	for _, clause := range clauses {
		clauseRisk, err := a.scorer.ScoreClause(ctx, clause)
		if err != nil {
			*warnings = append(*warnings, fmt.Sprintf("risk: %v", err))
		}
		risks = append(risks, clauseRisk)
	}

	return a.scorer.Aggregate(risks)
}
