package model

import "fmt"

// CriterionRecord is one discrete admission criterion segmented out of the
// clinical indications section. The segmenter owns the record while its
// section is being scanned; after that it is handed off by value and never
// mutated again.
type CriterionRecord struct {
	CriterionID             string   `json:"criterion_id"`
	CriterionText           string   `json:"criterion_text"`
	PrimaryCondition        string   `json:"primary_condition"`
	Qualifiers              []string `json:"qualifiers"`
	ConditionalRequirements []string `json:"conditional_requirements"`
	PersistenceRequirement  string   `json:"persistence_requirement"`
	EvidenceCitations       []int    `json:"evidence_citations"`
	ClinicalCategory        string   `json:"clinical_category"`
}

// CriterionID formats a 1-based sequence number as "criterion_NNN".
func CriterionID(n int) string {
	return fmt.Sprintf("criterion_%03d", n)
}

// AlternativeRecord is one alternative-to-admission option.
type AlternativeRecord struct {
	AlternativeID   string `json:"alternative_id"`
	AlternativeText string `json:"alternative_text"`
	CareSetting     string `json:"care_setting"`
}

// AlternativeID formats a 1-based sequence number as "alt_NNN".
func AlternativeID(n int) string {
	return fmt.Sprintf("alt_%03d", n)
}

// Care settings recognized for alternatives, checked in priority order by the
// alternative segmenter. CareSettingDefault is used when nothing matches.
const (
	CareSettingObservation = "observation_unit"
	CareSettingEmergency   = "emergency_department"
	CareSettingOutpatient  = "outpatient"
	CareSettingHome        = "home_care"
	CareSettingInfusion    = "infusion_center"
	CareSettingDefault     = "alternative_care"
)

// CategoryGeneral is the clinical category assigned when no keyword table
// entry matches a criterion's text.
const CategoryGeneral = "general"
