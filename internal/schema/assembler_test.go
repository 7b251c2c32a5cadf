package schema

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

func TestGuidelineID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sepsis & Other Febrile Illness!!", "mcg_sepsis_other_febrile_illness"},
		{"Community-Acquired Pneumonia", "mcg_community_acquired_pneumonia"},
		{"Heart   Failure", "mcg_heart_failure"},
	}

	for _, tt := range tests {
		if got := GuidelineID(tt.name); got != tt.want {
			t.Errorf("GuidelineID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGuidelineID_Truncated(t *testing.T) {
	long := "a very long guideline name that keeps going well past any plausible identifier length limit"
	got := GuidelineID(long)
	if len(got) > len("mcg_")+50 {
		t.Errorf("expected slug truncated to 50 chars, got %d: %q", len(got)-len("mcg_"), got)
	}
}

func testMetadata() model.ExtractionMetadata {
	return model.ExtractionMetadata{
		Filename:      "sepsis.pdf",
		GuidelineName: "Sepsis and Other Febrile Illness",
		OrgCode:       "44032",
		Edition:       "28",
		EffectiveDate: "January 15, 2024",
		ExtractedDate: "2024-06-01T00:00:00Z",
	}
}

func testInterpreted() []model.InterpretedCriterion {
	return []model.InterpretedCriterion{
		{
			CriterionID:   "criterion_001",
			CriterionText: "Severe sepsis with hypotension",
			Interpreted: model.Interpretation{
				PrimaryCondition: model.PrimaryCondition{Term: "severe sepsis"},
				RelatedClinicalFindings: []model.Finding{
					{Finding: "systolic blood pressure", Threshold: "90", Operator: model.OperatorLessThan},
				},
				ClinicalCategory: "hemodynamic",
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	a := NewAssembler(model.SchemaConfig{IncludeAlternatives: true})
	a.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	alternatives := []model.AlternativeRecord{
		{AlternativeID: "alt_001", AlternativeText: "Observation unit", CareSetting: "observation_unit"},
	}

	schema := a.Assemble(testMetadata(), testInterpreted(), alternatives)

	if schema.SchemaVersion != model.SchemaVersion {
		t.Errorf("expected schema version %s, got %s", model.SchemaVersion, schema.SchemaVersion)
	}
	if schema.SchemaCreated != "2024-06-01T12:00:00Z" {
		t.Errorf("unexpected schema_created: %s", schema.SchemaCreated)
	}

	meta := schema.GuidelineMetadata
	if meta.GuidelineID != "mcg_sepsis_and_other_febrile_illness" {
		t.Errorf("unexpected guideline_id: %s", meta.GuidelineID)
	}
	if meta.Specialty != "General Medicine" {
		t.Errorf("expected default specialty, got %s", meta.Specialty)
	}
	if meta.CareSetting != "inpatient" {
		t.Errorf("expected inpatient, got %s", meta.CareSetting)
	}
	if meta.SourceDocument != "sepsis.pdf" {
		t.Errorf("expected source document, got %s", meta.SourceDocument)
	}

	logic := schema.AdmissionDecisionLogic
	if logic.RuleType != model.RuleTypeDisjunctive {
		t.Errorf("expected disjunctive, got %s", logic.RuleType)
	}
	if logic.MinimumCriteriaCount != 1 {
		t.Errorf("expected minimum 1, got %d", logic.MinimumCriteriaCount)
	}
	if len(logic.Criteria) != 1 {
		t.Fatalf("expected 1 criterion, got %d", len(logic.Criteria))
	}
	if logic.Criteria[0].Priority != "high" {
		t.Errorf("expected priority high, got %s", logic.Criteria[0].Priority)
	}
	if logic.Criteria[0].MatchingRules.LogicOperator != model.LogicOperatorSingle {
		t.Errorf("expected SINGLE, got %s", logic.Criteria[0].MatchingRules.LogicOperator)
	}

	if len(schema.AlternativesToAdmission) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(schema.AlternativesToAdmission))
	}
	if schema.AlternativesToAdmission[0].Description != "Observation unit" {
		t.Errorf("unexpected alternative description: %s", schema.AlternativesToAdmission[0].Description)
	}
}

func TestAssemble_AlternativesDisabled(t *testing.T) {
	a := NewAssembler(model.SchemaConfig{IncludeAlternatives: false})

	alternatives := []model.AlternativeRecord{
		{AlternativeID: "alt_001", AlternativeText: "Observation unit"},
	}
	schema := a.Assemble(testMetadata(), testInterpreted(), alternatives)

	if len(schema.AlternativesToAdmission) != 0 {
		t.Errorf("expected no alternatives, got %v", schema.AlternativesToAdmission)
	}
	if schema.AlternativesToAdmission == nil {
		t.Error("alternatives list must stay present in the artifact")
	}

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"alternatives_to_admission":[]`) {
		t.Error("expected empty alternatives list in exported JSON, not null")
	}
}

func TestAssemble_EmptyCategoryDefaults(t *testing.T) {
	a := NewAssembler(model.SchemaConfig{})
	criteria := testInterpreted()
	criteria[0].Interpreted.ClinicalCategory = ""

	schema := a.Assemble(testMetadata(), criteria, nil)
	if got := schema.AdmissionDecisionLogic.Criteria[0].ClinicalCategory; got != model.CategoryGeneral {
		t.Errorf("expected general, got %s", got)
	}
}
