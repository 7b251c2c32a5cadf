// Package schema compiles interpreted criteria into the typed guideline
// schema, validates it, and exports the persisted artifact.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// dataTypeEntry maps a data type to the finding-name keywords that select it.
// Checked in table order; the first match wins.
type dataTypeEntry struct {
	DataType model.DataType
	Keywords []string
}

// dataTypeTable is tunable data, not semantics: incidental keyword overlap is
// a known heuristic limitation.
var dataTypeTable = []dataTypeEntry{
	{model.DataTypeVitalSign, []string{
		"blood pressure", "heart rate", "pulse", "temperature",
		"respiratory rate", "oxygen saturation", "spo2",
	}},
	{model.DataTypeLaboratory, []string{
		"platelet", "culture", "blood count", "hemoglobin", "creatinine",
		"bilirubin", "lactate", "wbc", "glucose", "electrolyte",
	}},
	{model.DataTypeClinicalAssessment, []string{
		"glasgow coma", "mental status", "consciousness", "delirium",
		"confusion", "orientation",
	}},
}

// CompileMatchingRules converts an interpretation's clinical findings into
// typed, operator-tagged matching conditions. Zero findings compile to a
// text-match fallback naming the primary condition; one finding is SINGLE;
// two or more are OR because any one finding satisfies an admission
// criterion.
func CompileMatchingRules(interp model.Interpretation) model.MatchingRules {
	findings := interp.RelatedClinicalFindings

	if len(findings) == 0 {
		term := interp.PrimaryCondition.Term
		if term == "" {
			term = "unknown"
		}
		return model.MatchingRules{
			LogicOperator: model.LogicOperatorOR,
			Description:   fmt.Sprintf("Match based on primary condition: %s", term),
			Conditions:    []model.MatchingCondition{},
		}
	}

	conditions := make([]model.MatchingCondition, 0, len(findings))
	for _, finding := range findings {
		conditions = append(conditions, compileCondition(finding))
	}

	logicOperator := model.LogicOperatorSingle
	if len(conditions) > 1 {
		logicOperator = model.LogicOperatorOR
	}

	return model.MatchingRules{
		LogicOperator: logicOperator,
		Description:   "Match if any of the following clinical findings are present",
		Conditions:    conditions,
	}
}

// compileCondition builds one matching condition from a finding. The value is
// taken verbatim when numeric; otherwise the threshold is used when it parses
// as a float, and kept as its original text when it does not.
func compileCondition(finding model.Finding) model.MatchingCondition {
	operator := finding.Operator
	if operator == "" {
		operator = model.OperatorEquals
	}

	value := finding.Value
	if value.IsNull() && finding.Threshold != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(finding.Threshold), 64); err == nil {
			value = model.NumberValue(f)
		} else {
			value = model.TextValue(finding.Threshold)
		}
	}

	return model.MatchingCondition{
		DataType:      inferDataType(finding.Finding),
		Parameter:     finding.Finding,
		Value:         value,
		Unit:          finding.Unit,
		Operator:      operator,
		LoincCode:     finding.LoincCode,
		SnomedCode:    finding.SnomedCode,
		ThresholdText: finding.Threshold,
	}
}

// inferDataType classifies a finding name via the keyword tables, defaulting
// to the generic clinical_finding.
func inferDataType(findingName string) model.DataType {
	lower := strings.ToLower(findingName)
	for _, entry := range dataTypeTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.DataType
			}
		}
	}
	return model.DataTypeClinicalFinding
}
