package schema

import (
	"regexp"
	"strings"
	"time"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

const (
	defaultSpecialty   = "General Medicine"
	defaultCareSetting = "inpatient"
	criterionPriority  = "high"

	admissionLogicDescription = "Patient meets admission criteria if ANY of the following conditions are met"
)

// Assembler builds the exported guideline schema from extraction metadata,
// interpreted criteria, and alternatives.
type Assembler struct {
	includeAlternatives bool
	now                 func() time.Time
}

// NewAssembler returns an Assembler honoring the schema configuration.
func NewAssembler(cfg model.SchemaConfig) *Assembler {
	return &Assembler{
		includeAlternatives: cfg.IncludeAlternatives,
		now:                 time.Now,
	}
}

// Assemble builds the complete schema document. Criteria keep their input
// order; the alternatives list is always present in the artifact and stays
// empty when alternatives are disabled.
func (a *Assembler) Assemble(meta model.ExtractionMetadata, criteria []model.InterpretedCriterion, alternatives []model.AlternativeRecord) model.GuidelineSchema {
	schema := model.GuidelineSchema{
		SchemaVersion:     model.SchemaVersion,
		SchemaCreated:     a.now().UTC().Format(time.RFC3339),
		GuidelineMetadata: buildMetadata(meta),
		AdmissionDecisionLogic: model.AdmissionDecisionLogic{
			RuleType:             model.RuleTypeDisjunctive,
			Description:          admissionLogicDescription,
			MinimumCriteriaCount: 1,
			Criteria:             buildCriteria(criteria),
		},
	}
	schema.AlternativesToAdmission = []model.AlternativeEntry{}
	if a.includeAlternatives {
		schema.AlternativesToAdmission = buildAlternatives(alternatives)
	}
	return schema
}

func buildMetadata(meta model.ExtractionMetadata) model.GuidelineMetadata {
	specialty := meta.Specialty
	if specialty == "" {
		specialty = defaultSpecialty
	}
	return model.GuidelineMetadata{
		GuidelineID:    GuidelineID(meta.GuidelineName),
		GuidelineName:  meta.GuidelineName,
		OrgCode:        meta.OrgCode,
		Version:        meta.Edition,
		EffectiveDate:  meta.EffectiveDate,
		Specialty:      specialty,
		CareSetting:    defaultCareSetting,
		SourceDocument: meta.Filename,
		ExtractionDate: meta.ExtractedDate,
	}
}

func buildCriteria(criteria []model.InterpretedCriterion) []model.CompiledCriterion {
	compiled := make([]model.CompiledCriterion, 0, len(criteria))
	for _, c := range criteria {
		interp := c.Interpreted
		category := interp.ClinicalCategory
		if category == "" {
			category = model.CategoryGeneral
		}
		compiled = append(compiled, model.CompiledCriterion{
			CriterionID:      c.CriterionID,
			CriterionText:    c.CriterionText,
			Priority:         criterionPriority,
			ClinicalCategory: category,
			PrimaryCondition: interp.PrimaryCondition,
			MatchingRules:    CompileMatchingRules(interp),
			Qualifiers:       interp.Qualifiers,
			Dependencies:     interp.Dependencies,
		})
	}
	return compiled
}

func buildAlternatives(alternatives []model.AlternativeRecord) []model.AlternativeEntry {
	entries := make([]model.AlternativeEntry, 0, len(alternatives))
	for _, alt := range alternatives {
		entries = append(entries, model.AlternativeEntry{
			AlternativeID: alt.AlternativeID,
			Description:   alt.AlternativeText,
			CareSetting:   alt.CareSetting,
			Requirements:  []string{},
		})
	}
	return entries
}

var (
	slugDropRe     = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// GuidelineID derives the stable schema identifier from a guideline name:
// lowercased, punctuation dropped, whitespace and hyphen runs collapsed to
// underscores, truncated to 50 characters, prefixed "mcg_".
func GuidelineID(name string) string {
	slug := strings.ToLower(name)
	slug = slugDropRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return "mcg_" + slug
}
