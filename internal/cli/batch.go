package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelljiang/mcg-extractor/internal/pipeline"
	"github.com/michaelljiang/mcg-extractor/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every guideline PDF in a directory",
	Long: `Batch processes all PDF files in a directory concurrently:
- Each document runs through the full pipeline independently
- A failed document is reported but never aborts the batch
- Interpretation results are shared through the cache across documents

Example:
  mcg-extractor batch ./guidelines
  mcg-extractor batch ./guidelines --concurrency 4 --output-dir ./schemas
  mcg-extractor batch ./guidelines --llm-provider openai --timeout 1h`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent documents")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 1*time.Hour, "total timeout for batch processing")

	// Shared with the extract command
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./schemas", "output directory for schemas")
	batchCmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the plain-text summary files")
	batchCmd.Flags().BoolVar(&noAlts, "no-alternatives", false, "omit alternatives to admission from the schemas")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the interpretation cache")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist interpretation cache to this directory")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama; empty = heuristics only)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM base URL (for Ollama or custom endpoints)")
	batchCmd.Flags().IntVar(&llmWorkers, "llm-workers", 1, "concurrent interpretation workers per document")
	batchCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 2*time.Minute, "timeout per interpretation call")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Batch: %s (%d workers, output %s)\n\n", dir, concurrency, cfg.Output.Dir)

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}

	succeeded := 0
	failed := 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		succeeded++
		printRunResult(result.Run)
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d documents: %d succeeded, %d failed\n",
		len(results), succeeded, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}
