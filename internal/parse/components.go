package parse

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// ExtractComponents pulls all derived components out of one criterion's text.
// Pure and deterministic: re-running it on a record's final accumulated text
// reproduces the stored components exactly.
func ExtractComponents(text string, seq int) model.CriterionRecord {
	return model.CriterionRecord{
		CriterionID:             model.CriterionID(seq),
		CriterionText:           strings.TrimSpace(text),
		PrimaryCondition:        extractPrimaryCondition(text),
		Qualifiers:              extractQualifiers(text),
		ConditionalRequirements: extractConditionals(text),
		PersistenceRequirement:  extractPersistence(text),
		EvidenceCitations:       extractCitations(text),
		ClinicalCategory:        determineCategory(text),
	}
}

// extractPrimaryCondition strips parenthetical and bracketed asides, then
// truncates at the first conjunction or subordinator.
func extractPrimaryCondition(text string) string {
	clean := parentheticalRe.ReplaceAllString(text, "")
	clean = bracketedRe.ReplaceAllString(clean, "")
	parts := conjunctionSplitRe.Split(clean, 2)
	return strings.TrimSpace(parts[0])
}

// extractQualifiers matches the fixed qualifier word classes and returns a
// deduplicated, lower-cased, sorted set.
func extractQualifiers(text string) []string {
	seen := make(map[string]bool)
	for _, class := range qualifierClasses {
		for _, m := range class.FindAllStringSubmatch(text, -1) {
			seen[strings.ToLower(m[1])] = true
		}
	}
	qualifiers := make([]string, 0, len(seen))
	for q := range seen {
		qualifiers = append(qualifiers, q)
	}
	sort.Strings(qualifiers)
	return qualifiers
}

// extractConditionals captures clauses following conditional markers, in
// pattern order then occurrence order.
func extractConditionals(text string) []string {
	conditionals := []string{}
	for _, pattern := range conditionalPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			conditionals = append(conditionals, strings.TrimSpace(m[1]))
		}
	}
	return conditionals
}

// extractPersistence returns the first persistence clause, a bare
// "persistent" when the verb appears without a captured clause, or "".
func extractPersistence(text string) string {
	for _, pattern := range persistencePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return "persists " + strings.TrimSpace(m[1])
		}
		return "persistent"
	}
	return ""
}

// extractCitations returns all (N) integer tokens in order of appearance.
func extractCitations(text string) []int {
	citations := []int{}
	for _, m := range citationRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		citations = append(citations, n)
	}
	return citations
}

// determineCategory returns the first matching category from the keyword
// table, or the general default.
func determineCategory(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range categoryTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Category
			}
		}
	}
	return model.CategoryGeneral
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
