package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// mockRunner implements Runner
type mockRunner struct {
	shouldError bool
}

func (m *mockRunner) RunFile(ctx context.Context, path string) FileResult {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.shouldError {
		return FileResult{Path: path, Err: errors.New("run error")}
	}
	return FileResult{Path: path, Summary: "2 charts inserted"}
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	runner := &mockRunner{}
	processor := NewBatchProcessor(runner, 2)

	paths := []string{"a.md", "b.md", "c.md"}
	results := processor.ProcessFiles(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Err != nil {
			t.Errorf("unexpected error for %s: %v", res.Path, res.Err)
		}
		if res.Summary == "" {
			t.Errorf("expected summary for %s", res.Path)
		}
	}
}

func TestBatchProcessor_ProcessFiles_Error(t *testing.T) {
	runner := &mockRunner{shouldError: true}
	processor := NewBatchProcessor(runner, 2)

	results := processor.ProcessFiles(context.Background(), []string{"a.md"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("expected error, got nil")
	}
	if results[0].GetError() == nil {
		t.Error("expected GetError to surface the error")
	}
}

func TestBatchProcessor_ProcessFiles_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2)

	results := processor.ProcessFiles(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_LargeBatch(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 4)

	paths := make([]string, 50)
	for i := range paths {
		paths[i] = filepath.Join("posts", "post"+string(rune('a'+i%26))+".md")
	}

	results := processor.ProcessFiles(context.Background(), paths)
	if len(results) != 50 {
		t.Errorf("expected 50 results, got %d", len(results))
	}
}

func TestListMarkdownFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.md", "a.md", "notes.txt", "c.MD"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ListMarkdownFiles(dir)
	if err != nil {
		t.Fatalf("ListMarkdownFiles failed: %v", err)
	}

	if len(paths) != 3 {
		t.Fatalf("expected 3 markdown files, got %d: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "a.md" {
		t.Errorf("expected sorted order starting with a.md, got %s", paths[0])
	}
}

func TestProcessDir_MissingDir(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2)

	_, err := processor.ProcessDir(context.Background(), "does-not-exist")
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
