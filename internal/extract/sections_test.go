package extract

import (
	"strings"
	"testing"
)

var testHeaders = []string{
	"Clinical Indications for Admission to Inpatient Care",
	"Alternatives to Admission",
	"Discharge Planning",
}

const testDocument = `--- PAGE 1 ---
MCG: Sepsis and Other Febrile Illness
ORG: 44032
--- PAGE 2 ---
Clinical Indications for Admission to Inpatient Care
Admission is indicated for 1 or more of the following:
- Severe sepsis (1)
- Acute respiratory failure
--- PAGE 3 ---
Alternatives to Admission
- Observation unit monitoring
1. Outpatient therapy
`

func TestSplitSections(t *testing.T) {
	sections := SplitSections(testDocument, testHeaders)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	first := sections[0]
	if first.Name != "Clinical Indications for Admission to Inpatient Care" {
		t.Errorf("unexpected section name: %s", first.Name)
	}
	if first.PageNumber != 2 {
		t.Errorf("expected page 2, got %d", first.PageNumber)
	}
	if !strings.Contains(first.RawText, "Severe sepsis") {
		t.Errorf("section content missing: %q", first.RawText)
	}
	if strings.Contains(first.RawText, "Observation unit") {
		t.Error("section content leaked across the next header")
	}

	second := sections[1]
	if second.Name != "Alternatives to Admission" {
		t.Errorf("unexpected section name: %s", second.Name)
	}
	if second.PageNumber != 3 {
		t.Errorf("expected page 3, got %d", second.PageNumber)
	}
}

func TestSplitSections_FormattingMarkers(t *testing.T) {
	sections := SplitSections(testDocument, testHeaders)

	markers := sections[1].FormattingMarkers
	wantBullet, wantNumbered := false, false
	for _, m := range markers {
		if m == "bullet_points" {
			wantBullet = true
		}
		if m == "numbered_list" {
			wantNumbered = true
		}
	}
	if !wantBullet || !wantNumbered {
		t.Errorf("expected bullet_points and numbered_list markers, got %v", markers)
	}
}

func TestFormattingMarkers_HyphenBullet(t *testing.T) {
	markers := formattingMarkers("- Observation unit monitoring\n- Home health services")
	if len(markers) != 1 || markers[0] != "bullet_points" {
		t.Errorf("expected [bullet_points], got %v", markers)
	}

	markers = formattingMarkers("-2 mEq/L below baseline")
	for _, m := range markers {
		if m == "bullet_points" {
			t.Errorf("leading negative number counted as bullet: %v", markers)
		}
	}
}

func TestSplitSections_MentionInProseIsNotHeader(t *testing.T) {
	doc := "Clinical Indications for Admission to Inpatient Care\n" +
		"This long sentence merely mentions Alternatives to Admission in passing while discussing the overall structure of the guideline document and should never open a section.\n"

	sections := SplitSections(doc, testHeaders)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
}

func TestSplitSections_NoHeaders(t *testing.T) {
	sections := SplitSections("plain text without any headers\n", testHeaders)
	if len(sections) != 0 {
		t.Errorf("expected no sections, got %d", len(sections))
	}
}
