package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/michaelljiang/mcg-extractor/internal/pipeline"
)

// Processor runs the pipeline on a single document.
type Processor interface {
	ProcessDocument(ctx context.Context, path string) (*pipeline.RunResult, error)
}

// DocumentJob processes one PDF through the pipeline.
type DocumentJob struct {
	Path      string
	Processor Processor
}

// Execute runs the job.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.ProcessDocument(ctx, j.Path)
	return &DocumentResult{
		Path:  j.Path,
		Run:   result,
		Error: err,
	}
}

// DocumentResult is the outcome of processing one document.
type DocumentResult struct {
	Path  string
	Run   *pipeline.RunResult
	Error error
}

// GetError returns the processing error, if any.
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple documents concurrently. A failed document
// never aborts the batch.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given documents concurrently and returns one
// result per document.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	for _, path := range paths {
		pool.Submit(&DocumentJob{Path: path, Processor: b.processor})
	}

	results := pool.Wait()

	docResults := make([]*DocumentResult, len(results))
	for i, result := range results {
		docResults[i] = result.(*DocumentResult)
	}

	return docResults
}

// ProcessDir processes every PDF in a directory.
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*DocumentResult, error) {
	paths, err := ListPDFs(dir)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF files in %s", dir)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ListPDFs returns the PDF files in dir, sorted and deduplicated.
func ListPDFs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	upper, err := filepath.Glob(filepath.Join(dir, "*.PDF"))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var paths []string
	for _, m := range append(matches, upper...) {
		key := strings.ToLower(m)
		if !seen[key] {
			seen[key] = true
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
