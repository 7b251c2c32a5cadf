package interpret

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// DecodeResponse turns raw completion text into a structured interpretation.
// It strips a single fenced code block if present, then tries progressively
// more forgiving decodes: as-is, with literal newlines replaced by spaces,
// and finally the substring between the first '{' and the last '}'. The first
// success wins. An error means every rung failed; callers fall back to the
// minimal structure.
func DecodeResponse(raw string) (model.Interpretation, error) {
	text := stripCodeFence(raw)

	attempts := []func(string) string{
		func(s string) string { return s },
		func(s string) string { return strings.ReplaceAll(s, "\n", " ") },
		braceSubstring,
	}

	var lastErr error
	for _, transform := range attempts {
		candidate := transform(text)
		if candidate == "" {
			lastErr = fmt.Errorf("empty candidate")
			continue
		}
		var interp model.Interpretation
		if err := json.Unmarshal([]byte(candidate), &interp); err != nil {
			lastErr = err
			continue
		}
		normalize(&interp)
		return interp, nil
	}

	return model.Interpretation{}, fmt.Errorf("decode response: %w", lastErr)
}

// stripCodeFence removes the first ```json ... ``` or ``` ... ``` wrapper.
func stripCodeFence(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		rest := s[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(s)
}

// braceSubstring extracts the substring between the first '{' and the last
// '}', or "" when no object shape is present.
func braceSubstring(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// normalize fills nil collections so downstream marshaling is stable, and
// defaults a missing clinical category.
func normalize(interp *model.Interpretation) {
	if interp.PrimaryCondition.ICD10Codes == nil {
		interp.PrimaryCondition.ICD10Codes = []string{}
	}
	if interp.PrimaryCondition.Synonyms == nil {
		interp.PrimaryCondition.Synonyms = []string{}
	}
	if interp.RelatedClinicalFindings == nil {
		interp.RelatedClinicalFindings = []model.Finding{}
	}
	if interp.Qualifiers.Severity == nil {
		interp.Qualifiers.Severity = []string{}
	}
	if interp.Dependencies == nil {
		interp.Dependencies = []string{}
	}
	if interp.ClinicalCategory == "" {
		interp.ClinicalCategory = model.CategoryGeneral
	}
}
