package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lawbrief/lawbrief/internal/model"
)

// Analyzer defines the interface for analyzing one contract file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// AnalyzeJob represents one contract-file analysis job.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the analysis job.
func (j AnalyzeJob) Execute(ctx context.Context) *AnalyzeResult {
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &AnalyzeResult{
		Path:   j.Path,
		Report: report,
		Error:  err,
	}
}

// AnalyzeResult represents the result of an analysis job.
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// BatchProcessor analyzes multiple contract files concurrently. Documents
// are independent, so parallelizing across them is safe; the shared model
// capabilities are read-only.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes the given contract files concurrently.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	jobs := make([]AnalyzeJob, len(paths))
	for i, path := range paths {
		jobs[i] = AnalyzeJob{
			Path:     path,
			Analyzer: b.analyzer,
		}
	}

	return NewPool(b.concurrency).Run(ctx, jobs)
}

// CollectFiles resolves a batch input into contract file paths: a directory
// is walked for supported documents, a list file is read line by line, and
// anything else is treated as a single document.
func CollectFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.IsDir() {
		return collectDir(input)
	}

	if strings.HasSuffix(input, ".list") {
		return readPathsFromFile(input)
	}

	return []string{input}, nil
}

func collectDir(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md", ".html", ".htm":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// readPathsFromFile reads document paths from a file (one per line),
// skipping blanks and comments and dropping duplicates.
func readPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
