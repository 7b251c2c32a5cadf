package schema

import (
	"strings"
	"testing"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

func validSchema() model.GuidelineSchema {
	a := NewAssembler(model.SchemaConfig{IncludeAlternatives: true})
	return a.Assemble(testMetadata(), testInterpreted(), nil)
}

func TestValidate_Valid(t *testing.T) {
	ok, problems := Validate(validSchema())
	if !ok {
		t.Errorf("expected valid schema, got problems: %v", problems)
	}
}

func TestValidate_EmptyCriteria(t *testing.T) {
	s := validSchema()
	s.AdmissionDecisionLogic.Criteria = nil

	ok, problems := Validate(s)
	if ok {
		t.Fatal("expected invalid schema")
	}
	found := false
	for _, p := range problems {
		if strings.Contains(p, "empty") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a problem mentioning empty criteria, got %v", problems)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	s := validSchema()
	s.SchemaVersion = ""
	s.GuidelineMetadata.GuidelineID = ""
	s.AdmissionDecisionLogic.Criteria[0].CriterionID = ""
	s.AdmissionDecisionLogic.Criteria[0].CriterionText = ""

	ok, problems := Validate(s)
	if ok {
		t.Fatal("expected invalid schema")
	}
	if len(problems) < 4 {
		t.Errorf("expected every problem reported, got %v", problems)
	}
}

func TestValidate_ZeroValueNeverPanics(t *testing.T) {
	ok, problems := Validate(model.GuidelineSchema{})
	if ok {
		t.Error("zero-value schema must not validate")
	}
	if len(problems) == 0 {
		t.Error("expected problems for zero-value schema")
	}
}
