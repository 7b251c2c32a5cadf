package model

// SchemaVersion identifies the exported schema format.
const SchemaVersion = "1.0"

// DataType classifies a matching condition's parameter for downstream
// evaluation against patient data.
type DataType string

const (
	DataTypeVitalSign          DataType = "vital_sign"
	DataTypeLaboratory         DataType = "laboratory"
	DataTypeClinicalAssessment DataType = "clinical_assessment"
	DataTypeClinicalFinding    DataType = "clinical_finding"
)

// Logic operators for a criterion's compiled matching rules. Admission
// criteria are permissive: any one satisfied finding satisfies the criterion.
const (
	LogicOperatorOR     = "OR"
	LogicOperatorSingle = "SINGLE"
)

// RuleTypeDisjunctive is the document-level admission rule: any one criterion
// suffices.
const RuleTypeDisjunctive = "disjunctive"

// MatchingCondition is one compiled, operator-tagged rule derived from a
// clinical finding.
type MatchingCondition struct {
	DataType      DataType `json:"data_type"`
	Parameter     string   `json:"parameter"`
	Value         Value    `json:"value"`
	Unit          string   `json:"unit"`
	Operator      Operator `json:"operator"`
	LoincCode     string   `json:"loinc_code"`
	SnomedCode    string   `json:"snomed_code"`
	ThresholdText string   `json:"threshold_text"`
}

// MatchingRules is the compiled rule set for one criterion.
type MatchingRules struct {
	LogicOperator string              `json:"logic_operator"`
	Description   string              `json:"description"`
	Conditions    []MatchingCondition `json:"conditions"`
}

// CompiledCriterion is one criterion entry of the exported schema.
type CompiledCriterion struct {
	CriterionID      string           `json:"criterion_id"`
	CriterionText    string           `json:"criterion_text"`
	Priority         string           `json:"priority"`
	ClinicalCategory string           `json:"clinical_category"`
	PrimaryCondition PrimaryCondition `json:"primary_condition"`
	MatchingRules    MatchingRules    `json:"matching_conditions"`
	Qualifiers       QualifierSet     `json:"qualifiers"`
	Dependencies     []string         `json:"dependencies"`
}

// AdmissionDecisionLogic holds the document-level admission rule and its
// criteria in document order.
type AdmissionDecisionLogic struct {
	RuleType             string              `json:"rule_type"`
	Description          string              `json:"description"`
	MinimumCriteriaCount int                 `json:"minimum_criteria_count"`
	Criteria             []CompiledCriterion `json:"criteria"`
}

// GuidelineMetadata is the metadata block of the exported schema.
type GuidelineMetadata struct {
	GuidelineID    string `json:"guideline_id"`
	GuidelineName  string `json:"guideline_name"`
	OrgCode        string `json:"org_code"`
	Version        string `json:"version"`
	EffectiveDate  string `json:"effective_date"`
	Specialty      string `json:"specialty"`
	CareSetting    string `json:"care_setting"`
	SourceDocument string `json:"source_document"`
	ExtractionDate string `json:"extraction_date"`
}

// AlternativeEntry is one alternatives-to-admission entry of the exported
// schema.
type AlternativeEntry struct {
	AlternativeID string   `json:"alternative_id"`
	Description   string   `json:"description"`
	CareSetting   string   `json:"care_setting"`
	Requirements  []string `json:"requirements"`
}

// GuidelineSchema is the sole persisted artifact of a pipeline run: one
// validated, machine-executable admission-decision document per guideline.
type GuidelineSchema struct {
	SchemaVersion           string                 `json:"schema_version"`
	SchemaCreated           string                 `json:"schema_created"`
	GuidelineMetadata       GuidelineMetadata      `json:"guideline_metadata"`
	AdmissionDecisionLogic  AdmissionDecisionLogic `json:"admission_decision_logic"`
	AlternativesToAdmission []AlternativeEntry     `json:"alternatives_to_admission"`
}
