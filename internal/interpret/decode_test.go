package interpret

import (
	"testing"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

func TestDecodeResponse_CleanJSON(t *testing.T) {
	interp, err := DecodeResponse(goodResponse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interp.ClinicalCategory != "hemodynamic" {
		t.Errorf("expected hemodynamic, got %s", interp.ClinicalCategory)
	}
}

func TestDecodeResponse_FencedBlock(t *testing.T) {
	raw := "Here is the interpretation:\n```json\n" + goodResponse + "\n```\nLet me know if you need anything else."
	interp, err := DecodeResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interp.PrimaryCondition.Term != "severe sepsis" {
		t.Errorf("expected term, got %q", interp.PrimaryCondition.Term)
	}
}

func TestDecodeResponse_BareFence(t *testing.T) {
	raw := "```\n" + goodResponse + "\n```"
	if _, err := DecodeResponse(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeResponse_ProseAroundObject(t *testing.T) {
	raw := `The structured interpretation follows. {"primary_condition": {"term": "fever"}, "clinical_category": "infectious"} I hope this helps!`
	interp, err := DecodeResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interp.PrimaryCondition.Term != "fever" {
		t.Errorf("expected fever, got %q", interp.PrimaryCondition.Term)
	}
}

func TestDecodeResponse_AllRungsFail(t *testing.T) {
	if _, err := DecodeResponse("no structured output available"); err == nil {
		t.Fatal("expected error for undecodable response")
	}
}

func TestDecodeResponse_NormalizesCollections(t *testing.T) {
	interp, err := DecodeResponse(`{"primary_condition": {"term": "fever"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interp.RelatedClinicalFindings == nil || interp.Dependencies == nil ||
		interp.PrimaryCondition.ICD10Codes == nil || interp.Qualifiers.Severity == nil {
		t.Error("expected nil collections to be normalized to empty slices")
	}
	if interp.ClinicalCategory != model.CategoryGeneral {
		t.Errorf("expected default category, got %q", interp.ClinicalCategory)
	}
}

func TestDecodeResponse_TolerantFields(t *testing.T) {
	raw := `{
		"primary_condition": {"term": "tachycardia"},
		"related_clinical_findings": [
			{"finding": "heart rate", "threshold": 100, "operator": "at least", "value": "elevated", "unit": 1}
		]
	}`
	interp, err := DecodeResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := interp.RelatedClinicalFindings[0]
	if f.Threshold != "100" {
		t.Errorf("numeric threshold should coerce to string, got %q", f.Threshold)
	}
	if f.Operator != model.OperatorEquals {
		t.Errorf("unknown operator should normalize to equals, got %s", f.Operator)
	}
	if f.Value.Text != "elevated" {
		t.Errorf("string value should be kept as text, got %+v", f.Value)
	}
}
