package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"statgraft/internal/markdown"
	"statgraft/internal/pipeline"
	"statgraft/internal/worker"
)

var (
	batchMode        string
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every markdown file in a directory",
	Long: `Batch runs chart or suggest mode over every .md file directly inside a
directory, concurrently. Chart mode rewrites each file (or writes a copy to
--output-dir); suggest mode writes a <name>.suggestions.json report per file.

Enrichment is excluded from batch mode: lookup calls are strictly paced per
document and batching them defeats that.

Example:
  statgraft batch posts/ --mode chart --concurrency 4
  statgraft batch posts/ --mode suggest --output-dir reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchMode, "mode", "chart", "processing mode: chart or suggest")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "worker count (default from config)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "", "write outputs here instead of next to the inputs")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if batchMode != "chart" && batchMode != "suggest" {
		return fmt.Errorf("unknown mode %q (want chart or suggest)", batchMode)
	}

	cfg := loadConfig()
	workers := batchConcurrency
	if workers <= 0 {
		workers = cfg.Concurrency.Workers
	}

	if batchOutputDir != "" {
		if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	runner := &batchRunner{
		mode:      batchMode,
		pipeline:  pipeline.New(cfg, nil),
		outputDir: batchOutputDir,
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	processor := worker.NewBatchProcessor(runner, workers)
	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("ok   %s: %s\n", r.Path, r.Summary)
	}
	fmt.Printf("\n%d files processed, %d failed\n", len(results), failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// batchRunner adapts the pipeline to the worker pool's per-file interface
type batchRunner struct {
	mode      string
	pipeline  *pipeline.Pipeline
	outputDir string
}

func (r *batchRunner) RunFile(ctx context.Context, path string) worker.FileResult {
	raw, _, body, err := readPost(path)
	if err != nil {
		return worker.FileResult{Path: path, Err: err}
	}

	switch r.mode {
	case "chart":
		result := r.pipeline.GenerateCharts(body)
		if !result.Success {
			return worker.FileResult{Path: path, Err: fmt.Errorf("chart generation: %s", result.Error)}
		}

		doc := markdown.JoinFrontmatter(raw, result.Content)
		out := r.documentPath(path)
		if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
			return worker.FileResult{Path: path, Err: err}
		}

		return worker.FileResult{
			Path:    path,
			Summary: fmt.Sprintf("%d charts from %d statistics", len(result.Charts), result.StatisticsFound),
		}

	case "suggest":
		result := r.pipeline.SuggestVisuals(body)
		if !result.Success {
			return worker.FileResult{Path: path, Err: fmt.Errorf("suggestion analysis: %s", result.Error)}
		}

		var buf bytes.Buffer
		if err := pipeline.RenderJSON(&buf, result); err != nil {
			return worker.FileResult{Path: path, Err: err}
		}
		out := r.reportPath(path)
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return worker.FileResult{Path: path, Err: err}
		}

		return worker.FileResult{
			Path:    path,
			Summary: fmt.Sprintf("%d suggestions -> %s", len(result.Suggestions), out),
		}
	}

	return worker.FileResult{Path: path, Err: fmt.Errorf("unknown mode %q", r.mode)}
}

// documentPath places a chart-mode output: in place, or under the output dir
func (r *batchRunner) documentPath(in string) string {
	if r.outputDir == "" {
		return in
	}
	return filepath.Join(r.outputDir, filepath.Base(in))
}

// reportPath places a suggest-mode report next to the input or under the
// output dir, with the .md extension swapped for .suggestions.json
func (r *batchRunner) reportPath(in string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".suggestions.json"
	if r.outputDir == "" {
		return filepath.Join(filepath.Dir(in), base)
	}
	return filepath.Join(r.outputDir, base)
}
