package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

func TestExport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := validSchema()

	path, err := Export(s, dir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if filepath.Base(path) != s.GuidelineMetadata.GuidelineID+".json" {
		t.Errorf("unexpected file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported schema: %v", err)
	}

	var loaded model.GuidelineSchema
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("exported schema is not valid JSON: %v", err)
	}
	if loaded.GuidelineMetadata.GuidelineID != s.GuidelineMetadata.GuidelineID {
		t.Errorf("round trip lost guideline_id: %s", loaded.GuidelineMetadata.GuidelineID)
	}
	if len(loaded.AdmissionDecisionLogic.Criteria) != len(s.AdmissionDecisionLogic.Criteria) {
		t.Errorf("round trip lost criteria")
	}
}

func TestExport_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "schemas")
	if _, err := Export(validSchema(), dir); err != nil {
		t.Fatalf("export into missing directory failed: %v", err)
	}
}

func TestExportSummary(t *testing.T) {
	dir := t.TempDir()
	s := validSchema()

	path, err := ExportSummary(s, dir)
	if err != nil {
		t.Fatalf("export summary failed: %v", err)
	}
	if !strings.HasSuffix(path, "_summary.txt") {
		t.Errorf("unexpected summary path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		s.GuidelineMetadata.GuidelineName,
		"criterion_001",
		"ADMISSION CRITERIA",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestSummary_TruncatesConditionList(t *testing.T) {
	s := validSchema()
	findings := make([]model.Finding, 5)
	for i := range findings {
		findings[i] = model.Finding{Finding: "serum lactate", Threshold: "4", Operator: model.OperatorGreaterThan}
	}
	s.AdmissionDecisionLogic.Criteria[0].MatchingRules = CompileMatchingRules(model.Interpretation{
		RelatedClinicalFindings: findings,
	})

	text := Summary(s)
	if !strings.Contains(text, "... and 2 more conditions") {
		t.Errorf("expected condition list truncated after 3 entries:\n%s", text)
	}
}
