package interpret

import (
	"fmt"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// BuildPrompt constructs the interpretation prompt for one criterion. The
// prompt demands bare JSON, but the response is still run through the full
// decode ladder because completion services do not reliably comply.
func BuildPrompt(rec model.CriterionRecord) string {
	return fmt.Sprintf(`You are a medical informatics expert specializing in clinical criteria interpretation.

Given this admission criterion:
"%s"

Extract the following information in JSON format:

1. Primary clinical condition:
   - Standardized medical term
   - SNOMED CT code (if applicable)
   - ICD-10 codes (if applicable)
   - Clinical synonyms

2. Related clinical findings that would satisfy this criterion:
   - Vital signs (e.g., blood pressure, heart rate, temperature)
   - Laboratory values (e.g., platelet count, culture results)
   - Clinical assessments (e.g., Glasgow Coma Scale, mental status)
   - For each finding include:
     * Finding name
     * Threshold value (if quantitative)
     * Comparison operator (less_than, greater_than, equals, between)
     * Unit of measurement
     * LOINC code (if applicable)

3. Qualifiers:
   - Severity (severe, moderate, mild)
   - Temporal characteristics (acute, chronic, persistent)
   - Persistence requirements

4. Dependencies and conditional requirements

5. Clinical category (hemodynamic, respiratory, metabolic, laboratory, etc.)

Return ONLY a valid JSON object with this exact structure:
{
  "primary_condition": {
    "term": "string",
    "snomed_code": "string or empty",
    "icd10_codes": ["string"],
    "synonyms": ["string"]
  },
  "related_clinical_findings": [
    {
      "finding": "string",
      "threshold": "string (e.g., '90', '60', 'positive')",
      "operator": "less_than|greater_than|equals|between|contains",
      "value": "numeric value as number or null",
      "unit": "string (e.g., 'mmHg', 'per minute', 'degrees F')",
      "loinc_code": "string or empty",
      "snomed_code": "string or empty"
    }
  ],
  "qualifiers": {
    "severity": ["string"],
    "temporal": "string",
    "persistence": "string"
  },
  "dependencies": ["string"],
  "clinical_category": "string"
}

CRITICAL:
- Return ONLY valid, parseable JSON - no markdown, no explanations
- Ensure all strings are properly quoted and escaped
- Do not include newlines inside JSON string values
- If a code is not available, use an empty string ""
Be specific and comprehensive. Focus on creating actionable matching conditions.
`, rec.CriterionText)
}
