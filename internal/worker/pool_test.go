package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lawbrief/lawbrief/internal/model"
)

type slowAnalyzer struct {
	delay   time.Duration
	active  int32
	peak    int32
	mu      sync.Mutex
	started []string
}

func (a *slowAnalyzer) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	n := atomic.AddInt32(&a.active, 1)
	for {
		p := atomic.LoadInt32(&a.peak)
		if n <= p || atomic.CompareAndSwapInt32(&a.peak, p, n) {
			break
		}
	}
	a.mu.Lock()
	a.started = append(a.started, path)
	a.mu.Unlock()

	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	atomic.AddInt32(&a.active, -1)
	return &model.Report{SourcePath: path}, nil
}

func TestPool_RunsAllJobs(t *testing.T) {
	analyzer := &slowAnalyzer{}

	jobs := make([]AnalyzeJob, 8)
	for i := range jobs {
		jobs[i] = AnalyzeJob{Path: fmt.Sprintf("doc-%d.txt", i), Analyzer: analyzer}
	}

	results := NewPool(3).Run(context.Background(), jobs)

	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("unexpected error for %s: %v", r.Path, r.Error)
		}
		if r.Report == nil || r.Report.SourcePath != r.Path {
			t.Errorf("result for %s carries wrong report", r.Path)
		}
		seen[r.Path] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct paths, got %d", len(seen))
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	analyzer := &slowAnalyzer{delay: 20 * time.Millisecond}

	jobs := make([]AnalyzeJob, 10)
	for i := range jobs {
		jobs[i] = AnalyzeJob{Path: fmt.Sprintf("doc-%d.txt", i), Analyzer: analyzer}
	}

	NewPool(2).Run(context.Background(), jobs)

	if peak := atomic.LoadInt32(&analyzer.peak); peak > 2 {
		t.Errorf("expected at most 2 concurrent analyses, observed %d", peak)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	analyzer := &slowAnalyzer{}

	jobs := []AnalyzeJob{{Path: "only.txt", Analyzer: analyzer}}
	results := NewPool(0).Run(context.Background(), jobs)

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestPool_EmptyJobs(t *testing.T) {
	results := NewPool(4).Run(context.Background(), nil)
	if results != nil {
		t.Errorf("expected nil results for no jobs, got %v", results)
	}
}

func TestPool_CancelStopsFeeding(t *testing.T) {
	analyzer := &slowAnalyzer{delay: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]AnalyzeJob, 20)
	for i := range jobs {
		jobs[i] = AnalyzeJob{Path: fmt.Sprintf("doc-%d.txt", i), Analyzer: analyzer}
	}

	results := NewPool(2).Run(ctx, jobs)

	if len(results) == len(jobs) {
		t.Error("expected cancellation to stop feeding jobs")
	}

	analyzer.mu.Lock()
	started := len(analyzer.started)
	analyzer.mu.Unlock()
	if started != len(results) {
		t.Errorf("expected one result per started analysis, started %d got %d", started, len(results))
	}
}
