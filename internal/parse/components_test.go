package parse

import (
	"reflect"
	"testing"
)

func TestExtractComponents_SepsisCriterion(t *testing.T) {
	text := "Severe sepsis with systolic blood pressure less than 90 mmHg (6)"
	rec := ExtractComponents(text, 1)

	if rec.CriterionID != "criterion_001" {
		t.Errorf("expected criterion_001, got %s", rec.CriterionID)
	}
	if rec.CriterionText != text {
		t.Errorf("expected criterion text preserved, got %q", rec.CriterionText)
	}
	if rec.PrimaryCondition != "Severe sepsis" {
		t.Errorf("expected primary condition 'Severe sepsis', got %q", rec.PrimaryCondition)
	}
	if !reflect.DeepEqual(rec.Qualifiers, []string{"severe"}) {
		t.Errorf("expected qualifiers [severe], got %v", rec.Qualifiers)
	}
	if !reflect.DeepEqual(rec.EvidenceCitations, []int{6}) {
		t.Errorf("expected citations [6], got %v", rec.EvidenceCitations)
	}
	if rec.ClinicalCategory != "hemodynamic" {
		t.Errorf("expected category hemodynamic, got %s", rec.ClinicalCategory)
	}
}

func TestExtractComponents_Idempotent(t *testing.T) {
	text := "Acute respiratory failure requiring supplemental oxygen that persists despite outpatient treatment"

	first := ExtractComponents(text, 3)
	second := ExtractComponents(first.CriterionText, 3)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-extraction changed the record:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractPrimaryCondition(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Severe sepsis with hypotension", "Severe sepsis"},
		{"Pneumonia (community-acquired) or bronchitis", "Pneumonia"},
		{"Dehydration requiring IV fluids", "Dehydration"},
		{"Fever that persists", "Fever"},
		{"Altered mental status", "Altered mental status"},
		{"Bacteremia [confirmed] and fever", "Bacteremia"},
	}

	for _, tt := range tests {
		if got := extractPrimaryCondition(tt.text); got != tt.want {
			t.Errorf("extractPrimaryCondition(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractQualifiers_DedupedAndSorted(t *testing.T) {
	text := "Severe acute illness, severe and worsening, with new onset"
	got := extractQualifiers(text)
	want := []string{"acute", "new", "severe", "worsening"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractQualifiers_NoneFound(t *testing.T) {
	got := extractQualifiers("Pneumonia on chest radiograph")
	if len(got) != 0 {
		t.Errorf("expected no qualifiers, got %v", got)
	}
	if got == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestExtractConditionals(t *testing.T) {
	text := "Hypoxemia if oxygen saturation below 90%, despite supplemental oxygen"
	got := extractConditionals(text)
	want := []string{"oxygen saturation below 90%", "supplemental oxygen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractPersistence(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Hypotension that persists after fluid resuscitation", "persists fluid resuscitation"},
		{"Vomiting that persists", "persistent"},
		{"Fever ongoing despite antipyretics", "persists antipyretics"},
		{"Pneumonia on imaging", ""},
	}

	for _, tt := range tests {
		if got := extractPersistence(tt.text); got != tt.want {
			t.Errorf("extractPersistence(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractCitations_InOrder(t *testing.T) {
	got := extractCitations("Sepsis (3) with shock (12) and fever (1)")
	want := []int{3, 12, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDetermineCategory(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Hypotension with shock", "hemodynamic"},
		{"Hypoxemia requiring oxygen", "respiratory"},
		{"Altered mental status", "mental_status"},
		{"Positive blood culture", "laboratory"},
		{"Dehydration requiring fluids", "metabolic"},
		{"End organ dysfunction", "organ_dysfunction"},
		{"Elevated heart rate", "vital_signs"},
		{"Sepsis without other findings", "infectious"},
		{"Unable to tolerate oral intake", "general"},
		// Table order breaks keyword ties: blood pressure beats sepsis.
		{"Sepsis with low blood pressure", "hemodynamic"},
	}

	for _, tt := range tests {
		if got := determineCategory(tt.text); got != tt.want {
			t.Errorf("determineCategory(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
