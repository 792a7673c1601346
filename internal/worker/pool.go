// Package worker provides the bounded pool that parallelizes per-file
// extraction. File parsing is side-effect free, so the only coordination
// point is result collection after all jobs finish.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed on a pool worker.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job execution.
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of workers. Cancellation is cooperative:
// once the context is done no new jobs are dispatched, while in-flight jobs
// may run to completion (a single file parse is cheap and bounded).
type Pool struct {
	workers          int
	jobs             chan Job
	results          chan Result
	wg               sync.WaitGroup
	ctx              context.Context
	cancel           context.CancelFunc
	closeJobsOnce    sync.Once
	closeResultsOnce sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after cancellation are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobs <- job:
	}
}

// Close marks the end of submissions. No Submit may follow. Safe to call
// more than once.
func (p *Pool) Close() {
	p.closeJobsOnce.Do(func() {
		close(p.jobs)
	})
}

// Wait collects results until every submitted job has finished and returns
// them. Close must be called, possibly from another goroutine, for Wait to
// return. Wait never closes the queue itself, so submission may still be in
// flight while results drain; both channels are bounded and a batch larger
// than their buffers wedges unless collection runs concurrently.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown cancels the pool and waits for workers to exit.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeResultsOnce.Do(func() {
		close(p.results)
	})
}
