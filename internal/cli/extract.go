package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelljiang/mcg-extractor/internal/model"
	"github.com/michaelljiang/mcg-extractor/internal/pipeline"
)

var (
	outputDir   string
	noSummary   bool
	noAlts      bool
	noCache     bool
	cacheDir    string
	timeout     time.Duration
	pageStart   int
	pageEnd     int
	llmProvider string
	llmModel    string
	llmBaseURL  string
	llmWorkers  int
	llmTimeout  time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract an admission-decision schema from one guideline PDF",
	Long: `Extract processes a single guideline PDF end to end:
- Extract text, metadata, and named sections
- Segment the clinical indications into discrete criteria
- Interpret each criterion via the configured LLM provider
- Assemble, validate, and export the guideline schema

Example:
  mcg-extractor extract guideline.pdf
  mcg-extractor extract guideline.pdf --llm-provider openai --llm-model gpt-4o-mini
  mcg-extractor extract guideline.pdf --output-dir ./schemas --no-summary`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Output flags
	extractCmd.Flags().StringVar(&outputDir, "output-dir", "./schemas", "output directory for schemas")
	extractCmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the plain-text summary file")
	extractCmd.Flags().BoolVar(&noAlts, "no-alternatives", false, "omit alternatives to admission from the schema")

	// Extraction flags
	extractCmd.Flags().IntVar(&pageStart, "page-start", 0, "first PDF page to extract (1-based; 0 = from start)")
	extractCmd.Flags().IntVar(&pageEnd, "page-end", 0, "last PDF page to extract (0 = to end)")

	// Processing flags
	extractCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Minute, "overall processing timeout")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the interpretation cache")
	extractCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist interpretation cache to this directory")

	// LLM flags
	extractCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, ollama; empty = heuristics only)")
	extractCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	extractCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM base URL (for Ollama or custom endpoints)")
	extractCmd.Flags().IntVar(&llmWorkers, "llm-workers", 1, "concurrent interpretation workers")
	extractCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 2*time.Minute, "timeout per interpretation call")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Processing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Output dir: %s\n", cfg.Output.Dir)
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "LLM: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		} else {
			fmt.Fprintln(os.Stderr, "LLM: disabled (heuristic components only)")
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	result, err := p.ProcessDocument(ctx, path)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	printRunResult(result)
	return nil
}

// buildConfig assembles the pipeline configuration from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Extraction.PageStart = pageStart
	cfg.Extraction.PageEnd = pageEnd
	cfg.Output.Dir = outputDir
	cfg.Output.WriteSummary = !noSummary
	cfg.Output.Verbose = verbose
	cfg.Schema.IncludeAlternatives = !noAlts
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = cacheDir

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel
		cfg.LLM.BaseURL = llmBaseURL
		cfg.LLM.Workers = llmWorkers
		cfg.LLM.Timeout = llmTimeout

		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && llmBaseURL == "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

func printRunResult(result *pipeline.RunResult) {
	fmt.Fprintf(os.Stderr, "✓ %s: %d criteria, %d alternatives\n",
		result.GuidelineName, result.CriteriaCount, result.AlternativesCount)
	if result.InterpretationErrs > 0 {
		fmt.Fprintf(os.Stderr, "  %d criteria fell back to heuristic interpretation\n",
			result.InterpretationErrs)
	}
	if !result.Valid {
		fmt.Fprintf(os.Stderr, "  schema has %d validation problems:\n", len(result.ValidationProblems))
		for _, problem := range result.ValidationProblems {
			fmt.Fprintf(os.Stderr, "    - %s\n", problem)
		}
	}
	fmt.Fprintf(os.Stderr, "  schema: %s\n", result.SchemaPath)
	if result.SummaryPath != "" {
		fmt.Fprintf(os.Stderr, "  summary: %s\n", result.SummaryPath)
	}
	fmt.Fprintf(os.Stderr, "  completed in %v\n", result.Duration.Round(time.Millisecond))
}
