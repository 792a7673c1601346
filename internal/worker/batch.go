package worker

import (
	"context"

	"github.com/obsmith/semvault/internal/model"
)

// FileRef identifies one discovered document: its absolute path and its
// path relative to the scan root (which becomes record provenance).
type FileRef struct {
	Path string
	Rel  string
}

// ParseFunc reads one document and extracts its records. Implementations
// must be safe for concurrent use; each call depends on nothing but the
// file's bytes.
type ParseFunc func(ctx context.Context, file FileRef) ([]model.SemanticRecord, error)

// ParseJob is one per-file extraction task.
type ParseJob struct {
	File    FileRef
	Parse   ParseFunc
	Limiter *Limiter
}

// Execute runs the parse, honoring the dispatch throttle first.
func (j *ParseJob) Execute(ctx context.Context) Result {
	if err := j.Limiter.Wait(ctx); err != nil {
		return &ParseResult{File: j.File, Err: err}
	}
	records, err := j.Parse(ctx, j.File)
	return &ParseResult{File: j.File, Records: records, Err: err}
}

// ParseResult is the outcome of one file's extraction.
type ParseResult struct {
	File    FileRef
	Records []model.SemanticRecord
	Err     error
}

// GetError returns the error from the parse result.
func (r *ParseResult) GetError() error {
	return r.Err
}

// BatchProcessor extracts records from many files concurrently.
type BatchProcessor struct {
	parse       ParseFunc
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. filesPerSecond <= 0 disables
// throttling.
func NewBatchProcessor(parse ParseFunc, concurrency int, filesPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		parse:       parse,
		concurrency: concurrency,
		limiter:     NewLimiter(filesPerSecond, burst),
	}
}

// ProcessFiles parses all files and returns one result per file, in
// completion order. Callers re-sort records afterwards; the order here is
// not semantically significant. A failed file yields a result carrying its
// error and zero records; the batch always completes.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, files []FileRef) []*ParseResult {
	if len(files) == 0 {
		return []*ParseResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Dispatch from its own goroutine so results drain while submission is
	// still in flight. Both pool channels are bounded; a batch larger than
	// their buffers wedges if dispatch and collection run sequentially.
	// Cooperative cancel: checked between dispatches. In-flight parses run
	// to completion; a single parse is cheap and bounded.
	go func() {
		defer pool.Close()
		for _, file := range files {
			if ctx.Err() != nil {
				return
			}
			pool.Submit(&ParseJob{File: file, Parse: b.parse, Limiter: b.limiter})
		}
	}()

	results := pool.Wait()

	parseResults := make([]*ParseResult, len(results))
	for i, result := range results {
		parseResults[i] = result.(*ParseResult)
	}

	return parseResults
}
