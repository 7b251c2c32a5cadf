// Package pipeline orchestrates the extraction, parsing, interpretation, and
// schema stages for one guideline document.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michaelljiang/mcg-extractor/internal/cache"
	"github.com/michaelljiang/mcg-extractor/internal/extract"
	"github.com/michaelljiang/mcg-extractor/internal/interpret"
	"github.com/michaelljiang/mcg-extractor/internal/llm"
	"github.com/michaelljiang/mcg-extractor/internal/model"
	"github.com/michaelljiang/mcg-extractor/internal/parse"
	"github.com/michaelljiang/mcg-extractor/internal/schema"
)

// Pipeline orchestrates the complete document-to-schema process.
type Pipeline struct {
	extractor   extract.Extractor
	interpreter *interpret.Interpreter
	assembler   *schema.Assembler
	config      *model.Config
}

// NewPipeline creates a pipeline from the given configuration. A provider
// initialization failure downgrades interpretation to the fallback path
// rather than failing the run.
func NewPipeline(cfg *model.Config) *Pipeline {
	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			provider = p
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		extractor:   extract.NewPDFExtractor(cfg.Extraction, cfg.Parser, cfg.Output.Verbose),
		interpreter: interpret.New(provider, store, cfg.LLM, cfg.Output.Verbose),
		assembler:   schema.NewAssembler(cfg.Schema),
		config:      cfg,
	}
}

// SetExtractor replaces the document extractor. Used by tests and by callers
// feeding pre-extracted text.
func (p *Pipeline) SetExtractor(e extract.Extractor) {
	p.extractor = e
}

// RunResult records the outcome of processing one document.
type RunResult struct {
	RunID              string        `json:"run_id"`
	SourcePath         string        `json:"source_path"`
	GuidelineName      string        `json:"guideline_name"`
	SectionCount       int           `json:"section_count"`
	CriteriaCount      int           `json:"criteria_count"`
	AlternativesCount  int           `json:"alternatives_count"`
	InterpretationErrs int           `json:"interpretation_errors"`
	SchemaPath         string        `json:"schema_path"`
	SummaryPath        string        `json:"summary_path,omitempty"`
	Valid              bool          `json:"valid"`
	ValidationProblems []string      `json:"validation_problems,omitempty"`
	Duration           time.Duration `json:"duration"`
}

// ProcessDocument runs the full pipeline on one PDF. Extraction and export
// failures are fatal for the document; a missing section, interpretation
// failures, and validation problems are recorded and the run continues.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string) (*RunResult, error) {
	started := time.Now()
	result := &RunResult{
		RunID:      uuid.NewString(),
		SourcePath: path,
	}

	// 1. Extract text, metadata, and sections.
	doc, err := p.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.GuidelineName = doc.Metadata.GuidelineName
	result.SectionCount = len(doc.Sections)

	// 2. Segment admission criteria and alternatives.
	criteria := p.segmentCriteria(doc)
	alternatives := p.segmentAlternatives(doc)
	result.CriteriaCount = len(criteria)
	result.AlternativesCount = len(alternatives)

	// 3. Interpret criteria.
	interpreted := p.interpreter.InterpretAll(ctx, criteria)
	for _, ic := range interpreted {
		if ic.InterpretationError != "" {
			result.InterpretationErrs++
		}
	}

	// 4. Assemble and validate. Validation problems never block export; the
	// schema ships with its problems recorded so callers can triage.
	assembled := p.assembler.Assemble(doc.Metadata, interpreted, alternatives)
	result.Valid, result.ValidationProblems = schema.Validate(assembled)
	if !result.Valid && p.config.Output.Verbose {
		for _, problem := range result.ValidationProblems {
			fmt.Fprintf(os.Stderr, "validation: %s\n", problem)
		}
	}

	// 5. Export.
	schemaPath, err := schema.Export(assembled, p.config.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.SchemaPath = schemaPath
	if p.config.Output.WriteSummary {
		summaryPath, err := schema.ExportSummary(assembled, p.config.Output.Dir)
		if err != nil {
			return nil, fmt.Errorf("export summary: %w", err)
		}
		result.SummaryPath = summaryPath
	}

	result.Duration = time.Since(started)
	return result, nil
}

func (p *Pipeline) segmentCriteria(doc *model.Document) []model.CriterionRecord {
	section, ok := findSection(doc.Sections, p.config.Parser.AdmissionSection)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: no %q section in %s\n",
			p.config.Parser.AdmissionSection, doc.Metadata.Filename)
		return nil
	}
	return parse.NewSegmenter().Segment(section.RawText)
}

func (p *Pipeline) segmentAlternatives(doc *model.Document) []model.AlternativeRecord {
	section, ok := findSection(doc.Sections, p.config.Parser.AlternativesSection)
	if !ok {
		return nil
	}
	return parse.SegmentAlternatives(section.RawText)
}

// findSection matches a section by case-insensitive substring of its name.
func findSection(sections []model.Section, name string) (model.Section, bool) {
	lower := strings.ToLower(name)
	for _, s := range sections {
		if strings.Contains(strings.ToLower(s.Name), lower) {
			return s, true
		}
	}
	return model.Section{}, false
}
