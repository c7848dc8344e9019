package worker

import (
	"context"
	"sync"
)

// Pool runs contract analysis jobs across a bounded set of goroutines.
// Documents are independent, so each analysis runs in isolation. A cancelled
// context stops feeding new jobs; analyses already in flight run to
// completion and their results are still returned.
type Pool struct {
	workers int
}

// NewPool creates a pool with the specified number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes the jobs and returns one result per started job. Results
// arrive in completion order, not submission order.
func (p *Pool) Run(ctx context.Context, jobs []AnalyzeJob) []*AnalyzeResult {
	if len(jobs) == 0 {
		return nil
	}

	queue := make(chan AnalyzeJob)
	results := make(chan *AnalyzeResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				results <- job.Execute(ctx)
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case queue <- job:
		}
	}
	close(queue)

	wg.Wait()
	close(results)

	collected := make([]*AnalyzeResult, 0, len(jobs))
	for r := range results {
		collected = append(collected, r)
	}
	return collected
}
