package schema

import (
	"fmt"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// Validate checks structural completeness of an assembled schema. It never
// panics and never stops at the first problem: the returned slice names every
// issue found, and the bool is true only when the slice is empty.
func Validate(s model.GuidelineSchema) (bool, []string) {
	var problems []string

	if s.SchemaVersion == "" {
		problems = append(problems, "missing schema_version")
	}
	if s.GuidelineMetadata.GuidelineID == "" {
		problems = append(problems, "guideline_metadata: missing guideline_id")
	}
	if s.GuidelineMetadata.GuidelineName == "" {
		problems = append(problems, "guideline_metadata: missing guideline_name")
	}
	if s.AdmissionDecisionLogic.RuleType == "" {
		problems = append(problems, "admission_decision_logic: missing rule_type")
	}
	if len(s.AdmissionDecisionLogic.Criteria) == 0 {
		problems = append(problems, "admission_decision_logic: criteria list is empty")
	}

	for i, c := range s.AdmissionDecisionLogic.Criteria {
		if c.CriterionID == "" {
			problems = append(problems, fmt.Sprintf("criteria[%d]: missing criterion_id", i))
		}
		if c.CriterionText == "" {
			problems = append(problems, fmt.Sprintf("criteria[%d]: missing criterion_text", i))
		}
		if c.MatchingRules.LogicOperator == "" {
			problems = append(problems, fmt.Sprintf("criteria[%d]: missing matching_conditions logic_operator", i))
		}
	}

	for i, alt := range s.AlternativesToAdmission {
		if alt.AlternativeID == "" {
			problems = append(problems, fmt.Sprintf("alternatives_to_admission[%d]: missing alternative_id", i))
		}
		if alt.Description == "" {
			problems = append(problems, fmt.Sprintf("alternatives_to_admission[%d]: missing description", i))
		}
	}

	return len(problems) == 0, problems
}
