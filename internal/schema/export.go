package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// Export writes the schema as indented JSON to <dir>/<guideline_id>.json,
// creating the directory as needed, and returns the written path.
func Export(s model.GuidelineSchema, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}

	path := filepath.Join(dir, s.GuidelineMetadata.GuidelineID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write schema: %w", err)
	}
	return path, nil
}

// ExportSummary writes a human-readable projection of the schema to
// <dir>/<guideline_id>_summary.txt and returns the written path.
func ExportSummary(s model.GuidelineSchema, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, s.GuidelineMetadata.GuidelineID+"_summary.txt")
	if err := os.WriteFile(path, []byte(Summary(s)), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// Summary renders the plain-text projection of a schema.
func Summary(s model.GuidelineSchema) string {
	var b strings.Builder
	bar := strings.Repeat("=", 70)

	fmt.Fprintln(&b, bar)
	fmt.Fprintln(&b, "GUIDELINE SCHEMA SUMMARY")
	fmt.Fprintln(&b, bar)
	fmt.Fprintln(&b)

	meta := s.GuidelineMetadata
	fmt.Fprintf(&b, "Guideline: %s\n", meta.GuidelineName)
	fmt.Fprintf(&b, "ID: %s\n", meta.GuidelineID)
	fmt.Fprintf(&b, "ORG Code: %s\n", meta.OrgCode)
	fmt.Fprintf(&b, "Version: %s\n", meta.Version)
	fmt.Fprintf(&b, "Specialty: %s\n", meta.Specialty)
	fmt.Fprintf(&b, "Source: %s\n", meta.SourceDocument)
	fmt.Fprintln(&b)

	logic := s.AdmissionDecisionLogic
	fmt.Fprintf(&b, "ADMISSION CRITERIA (%s, minimum %d):\n",
		logic.RuleType, logic.MinimumCriteriaCount)
	fmt.Fprintln(&b, strings.Repeat("-", 70))
	for _, c := range logic.Criteria {
		fmt.Fprintf(&b, "\n[%s] %s\n", c.CriterionID, c.CriterionText)
		fmt.Fprintf(&b, "  Category: %s\n", c.ClinicalCategory)
		if term := c.PrimaryCondition.Term; term != "" {
			fmt.Fprintf(&b, "  Condition: %s\n", term)
		}
		conditions := c.MatchingRules.Conditions
		for i, cond := range conditions {
			if i == 3 {
				fmt.Fprintf(&b, "  ... and %d more conditions\n", len(conditions)-3)
				break
			}
			fmt.Fprintf(&b, "  - %s %s %s\n", cond.Parameter, cond.Operator, formatValue(cond))
		}
	}

	if len(s.AlternativesToAdmission) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "ALTERNATIVES TO ADMISSION:")
		fmt.Fprintln(&b, strings.Repeat("-", 70))
		for _, alt := range s.AlternativesToAdmission {
			fmt.Fprintf(&b, "\n[%s] %s\n", alt.AlternativeID, alt.Description)
			fmt.Fprintf(&b, "  Care setting: %s\n", alt.CareSetting)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, bar)
	return b.String()
}

func formatValue(cond model.MatchingCondition) string {
	v := cond.Value
	var s string
	switch {
	case v.Number != nil:
		s = fmt.Sprintf("%g", *v.Number)
	case v.Text != "":
		s = v.Text
	default:
		s = cond.ThresholdText
	}
	if cond.Unit != "" {
		s += " " + cond.Unit
	}
	return s
}
