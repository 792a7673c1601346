package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/obsmith/semvault/internal/model"
)

func TestBatchProcessor_AllFilesProcessed(t *testing.T) {
	parse := func(ctx context.Context, file FileRef) ([]model.SemanticRecord, error) {
		return []model.SemanticRecord{{Kind: "Claim", ID: file.Rel, Label: file.Rel}}, nil
	}

	files := []FileRef{
		{Path: "/v/a.md", Rel: "a.md"},
		{Path: "/v/b.md", Rel: "b.md"},
		{Path: "/v/c.md", Rel: "c.md"},
	}

	b := NewBatchProcessor(parse, 4, 0, 0)
	results := b.ProcessFiles(context.Background(), files)

	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("unexpected error for %s: %v", res.File.Rel, res.Err)
		}
		if len(res.Records) != 1 {
			t.Errorf("expected 1 record for %s, got %d", res.File.Rel, len(res.Records))
		}
	}
}

func TestBatchProcessor_FailedFileDoesNotAbortBatch(t *testing.T) {
	parse := func(ctx context.Context, file FileRef) ([]model.SemanticRecord, error) {
		if file.Rel == "bad.md" {
			return nil, errors.New("unreadable")
		}
		return []model.SemanticRecord{{ID: file.Rel}}, nil
	}

	files := []FileRef{
		{Path: "/v/good.md", Rel: "good.md"},
		{Path: "/v/bad.md", Rel: "bad.md"},
		{Path: "/v/fine.md", Rel: "fine.md"},
	}

	b := NewBatchProcessor(parse, 2, 0, 0)
	results := b.ProcessFiles(context.Background(), files)

	if len(results) != 3 {
		t.Fatalf("batch must complete best-effort, got %d results", len(results))
	}

	failures := 0
	for _, res := range results {
		if res.GetError() != nil {
			failures++
			if len(res.Records) != 0 {
				t.Errorf("failed file must contribute zero records")
			}
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly 1 failure, got %d", failures)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(func(ctx context.Context, file FileRef) ([]model.SemanticRecord, error) {
		return nil, nil
	}, 2, 0, 0)

	results := b.ProcessFiles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results for empty input, got %d", len(results))
	}
}

func TestBatchProcessor_LargeBatchCompletes(t *testing.T) {
	parse := func(ctx context.Context, file FileRef) ([]model.SemanticRecord, error) {
		return []model.SemanticRecord{{ID: file.Rel}}, nil
	}

	// Well past what a single worker's channel buffers can absorb, so the
	// batch only completes if results drain during dispatch.
	files := make([]FileRef, 64)
	for i := range files {
		files[i] = FileRef{Path: "/v/n.md", Rel: fmt.Sprintf("n%02d.md", i)}
	}

	b := NewBatchProcessor(parse, 1, 0, 0)

	done := make(chan []*ParseResult, 1)
	go func() { done <- b.ProcessFiles(context.Background(), files) }()

	select {
	case results := <-done:
		if len(results) != len(files) {
			t.Errorf("expected %d results, got %d", len(files), len(results))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessFiles stalled: dispatch blocked against full result buffer")
	}
}

func TestBatchProcessor_CancelStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	parse := func(ctx context.Context, file FileRef) ([]model.SemanticRecord, error) {
		time.Sleep(5 * time.Millisecond)
		return nil, nil
	}

	files := make([]FileRef, 200)
	for i := range files {
		files[i] = FileRef{Path: "/v/x.md", Rel: "x.md"}
	}

	cancel() // cancelled before dispatch: nothing should be submitted

	b := NewBatchProcessor(parse, 2, 0, 0)
	results := b.ProcessFiles(ctx, files)

	if len(results) != 0 {
		t.Errorf("expected no results after pre-cancelled context, got %d", len(results))
	}
}
