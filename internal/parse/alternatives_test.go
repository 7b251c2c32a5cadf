package parse

import (
	"strings"
	"testing"
)

func TestSegmentAlternatives(t *testing.T) {
	section := `Alternatives to inpatient admission include:
- Observation unit monitoring for stable patients
- Outpatient antibiotic therapy with close follow-up
  within 48 hours
- Home infusion services
`
	alts := SegmentAlternatives(section)
	if len(alts) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(alts))
	}

	if alts[0].AlternativeID != "alt_001" {
		t.Errorf("expected alt_001, got %s", alts[0].AlternativeID)
	}
	if alts[0].CareSetting != "observation_unit" {
		t.Errorf("expected observation_unit, got %s", alts[0].CareSetting)
	}
	if alts[1].CareSetting != "outpatient" {
		t.Errorf("expected outpatient, got %s", alts[1].CareSetting)
	}
	if !strings.Contains(alts[1].AlternativeText, "within 48 hours") {
		t.Errorf("continuation not appended: %q", alts[1].AlternativeText)
	}
	if alts[2].CareSetting != "home_care" {
		t.Errorf("expected home_care, got %s", alts[2].CareSetting)
	}
}

func TestSegmentAlternatives_DefaultSetting(t *testing.T) {
	alts := SegmentAlternatives("- Telemetry monitoring at a nursing facility\n")
	if len(alts) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(alts))
	}
	if alts[0].CareSetting != "alternative_care" {
		t.Errorf("expected alternative_care, got %s", alts[0].CareSetting)
	}
}

func TestSegmentAlternatives_Empty(t *testing.T) {
	alts := SegmentAlternatives("   \n")
	if alts == nil || len(alts) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", alts)
	}
}

func TestDetermineCareSetting_PriorityOrder(t *testing.T) {
	// Observation outranks emergency when both keywords appear.
	got := determineCareSetting("observation in the emergency department")
	if got != "observation_unit" {
		t.Errorf("expected observation_unit, got %s", got)
	}
}
