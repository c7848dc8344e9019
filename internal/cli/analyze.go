package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lawbrief/lawbrief/internal/model"
	"github.com/lawbrief/lawbrief/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON        string
	outMD          string
	timeout        time.Duration
	noFooter       bool
	noPerClause    bool
	provider       string
	chatModel      string
	embeddingModel string
	summaryMode    string
	callsPerSecond float64
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single contract and generate a risk report",
	Long: `Analyze reads one contract document (.txt, .md, or .html) to:
- Split the text into individual clauses
- Classify each clause by type with a confidence score
- Score clause and contract risk with a transparent breakdown
- Extract parties, dates, monetary amounts, and jurisdictions
- Generate short and detailed summaries

Example:
  lawbrief analyze contract.txt
  lawbrief analyze contract.txt --json report.json --md report.md
  lawbrief analyze contract.pdf.txt --provider ollama --model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Analysis flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&summaryMode, "summary-mode", "hybrid", "summarization mode (abstractive, extractive, hybrid)")
	analyzeCmd.Flags().BoolVar(&noPerClause, "no-clause-summaries", false, "skip per-clause summaries")

	// Model flags
	analyzeCmd.Flags().StringVar(&provider, "provider", "openai", "model provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&chatModel, "model", "gpt-4o-mini", "chat model for summarization and tagging")
	analyzeCmd.Flags().StringVar(&embeddingModel, "embedding-model", "text-embedding-3-small", "embedding model for classification and risk scoring")
	analyzeCmd.Flags().Float64Var(&callsPerSecond, "rate-limit", 5, "max model calls per second")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", file)
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", provider, chatModel)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Initializing model provider...\n")
	}

	analyzer, err := pipeline.NewAnalyzer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	report, err := analyzer.AnalyzeFile(ctx, file)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d clauses\n", len(report.Clauses))
		fmt.Fprintf(os.Stderr, "✓ Contract risk: %s (%.3f)\n", report.Risk.ContractRiskLevel, report.Risk.ContractRiskScore)
		for _, w := range report.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ %s\n", w)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := analyzer.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig merges defaults with model flags and environment variables.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.LLM.Provider = provider
	cfg.LLM.Model = chatModel
	cfg.LLM.EmbeddingModel = embeddingModel
	cfg.Summary.Mode = summaryMode
	cfg.Summary.PerClause = !noPerClause
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Concurrency.ModelCallsPerS = callsPerSecond

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, ollama)", provider)
	}

	return cfg, nil
}
