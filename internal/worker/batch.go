package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Runner processes one markdown file and reports what happened
type Runner interface {
	RunFile(ctx context.Context, path string) FileResult
}

// FileResult is the outcome of processing one file
type FileResult struct {
	Path    string
	Summary string // One-line description for the batch report
	Err     error
}

// GetError returns the error from the file result
func (r FileResult) GetError() error {
	return r.Err
}

// fileJob adapts one file to the pool's Job interface
type fileJob struct {
	path   string
	runner Runner
}

func (j *fileJob) Execute(ctx context.Context) Result {
	return j.runner.RunFile(ctx, j.path)
}

// BatchProcessor runs markdown files through a Runner concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessFiles processes the given files concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []FileResult {
	if len(paths) == 0 {
		return []FileResult{}
	}

	pool := NewPoolWithQueue(b.concurrency, len(paths))
	pool.Start()

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-stop:
		}
	}()
	defer close(stop)

	for _, path := range paths {
		pool.Submit(&fileJob{path: path, runner: b.runner})
	}

	var results []FileResult
	for _, r := range pool.Wait() {
		if fr, ok := r.(FileResult); ok {
			results = append(results, fr)
		}
	}
	return results
}

// ProcessDir processes every markdown file directly inside dir
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]FileResult, error) {
	paths, err := ListMarkdownFiles(dir)
	if err != nil {
		return nil, err
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ListMarkdownFiles returns the .md files directly inside dir, sorted
func ListMarkdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
