package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lawbrief/lawbrief/internal/pipeline"
	"github.com/lawbrief/lawbrief/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noFooter and the model flags are defined in analyze.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <input>",
	Short: "Analyze multiple contracts in parallel",
	Long: `Batch processes multiple contract documents concurrently:
- Input is a directory of documents, a .list file of paths (one per
  line), or a single document
- Documents are analyzed in parallel with a configurable worker count
- Each document gets its own JSON and Markdown report

Example:
  lawbrief batch ./contracts
  lawbrief batch contracts.list --concurrency 8 --output-dir ./reports
  lawbrief batch ./contracts --provider ollama --model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lawbrief-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Output flags shared with analyze
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().BoolVar(&noPerClause, "no-clause-summaries", false, "skip per-clause summaries")
	batchCmd.Flags().StringVar(&summaryMode, "summary-mode", "hybrid", "summarization mode (abstractive, extractive, hybrid)")

	// Model flags
	batchCmd.Flags().StringVar(&provider, "provider", "openai", "model provider (openai, ollama)")
	batchCmd.Flags().StringVar(&chatModel, "model", "gpt-4o-mini", "chat model for summarization and tagging")
	batchCmd.Flags().StringVar(&embeddingModel, "embedding-model", "text-embedding-3-small", "embedding model for classification and risk scoring")
	batchCmd.Flags().Float64Var(&callsPerSecond, "rate-limit", 5, "max model calls per second")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  LawBrief Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "  Models:       %s/%s\n", provider, chatModel)
	fmt.Fprintf(os.Stderr, "\n")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Collecting documents...\n")
	paths, err := worker.CollectFiles(input)
	if err != nil {
		return fmt.Errorf("collect files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents found in %s", input)
	}

	fmt.Fprintf(os.Stderr, "✓ Found %d documents\n", len(paths))
	fmt.Fprintf(os.Stderr, "\n")

	fmt.Fprintf(os.Stderr, "⚙️  Initializing model provider...\n")
	analyzer, err := pipeline.NewAnalyzer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Analyzing with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(analyzer, concurrency)
	results := processor.ProcessFiles(ctx, paths)

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (risk: %s %.3f)\n",
			filepath.Base(result.Path), result.Report.Risk.ContractRiskLevel, result.Report.Risk.ContractRiskScore)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// sanitizeFilename derives a report slug from a document path.
func sanitizeFilename(path string) string {
	s := filepath.Base(path)
	s = strings.TrimSuffix(s, filepath.Ext(s))

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}

	return s
}
