package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Operator is the comparison operator attached to a clinical finding. Decoding
// normalizes unrecognized operator strings to OperatorEquals instead of
// passing them through.
type Operator string

const (
	OperatorLessThan    Operator = "less_than"
	OperatorGreaterThan Operator = "greater_than"
	OperatorEquals      Operator = "equals"
	OperatorBetween     Operator = "between"
	OperatorContains    Operator = "contains"
)

// ParseOperator reports whether s names a known operator.
func ParseOperator(s string) (Operator, bool) {
	switch Operator(strings.ToLower(strings.TrimSpace(s))) {
	case OperatorLessThan:
		return OperatorLessThan, true
	case OperatorGreaterThan:
		return OperatorGreaterThan, true
	case OperatorEquals:
		return OperatorEquals, true
	case OperatorBetween:
		return OperatorBetween, true
	case OperatorContains:
		return OperatorContains, true
	}
	return OperatorEquals, false
}

// UnmarshalJSON accepts any string and normalizes unknown values to equals.
func (o *Operator) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	op, _ := ParseOperator(s)
	*o = op
	return nil
}

// Value holds a finding value that may arrive from the interpretation service
// as a number, a string, or null. A numeric value is never silently dropped;
// a non-numeric one is kept as its original text.
type Value struct {
	Number *float64
	Text   string
}

// NumberValue builds a numeric Value.
func NumberValue(f float64) Value {
	return Value{Number: &f}
}

// TextValue builds a string Value.
func TextValue(s string) Value {
	return Value{Text: s}
}

// IsNull reports whether the value carries neither a number nor text.
func (v Value) IsNull() bool {
	return v.Number == nil && v.Text == ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Number != nil {
		return json.Marshal(*v.Number)
	}
	if v.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(v.Text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*v = Value{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{Text: s}
		return nil
	}
	if s := string(data); s == "true" || s == "false" {
		*v = Value{Text: s}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("value is neither number nor string: %w", err)
	}
	*v = Value{Number: &f}
	return nil
}

// flexString decodes a JSON string, number, or boolean into a string. The
// interpretation service frequently emits bare numbers or booleans for fields
// documented as strings.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if s := string(data); s == "true" || s == "false" {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// Finding is one quantifiable or categorical clinical observation returned by
// the interpretation service.
type Finding struct {
	Finding    string   `json:"finding"`
	Threshold  string   `json:"threshold"`
	Operator   Operator `json:"operator"`
	Value      Value    `json:"value"`
	Unit       string   `json:"unit"`
	LoincCode  string   `json:"loinc_code"`
	SnomedCode string   `json:"snomed_code"`
}

// UnmarshalJSON tolerates numeric thresholds, units, and codes.
func (f *Finding) UnmarshalJSON(data []byte) error {
	var raw struct {
		Finding    string     `json:"finding"`
		Threshold  flexString `json:"threshold"`
		Operator   Operator   `json:"operator"`
		Value      Value      `json:"value"`
		Unit       flexString `json:"unit"`
		LoincCode  flexString `json:"loinc_code"`
		SnomedCode flexString `json:"snomed_code"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Finding{
		Finding:    raw.Finding,
		Threshold:  string(raw.Threshold),
		Operator:   raw.Operator,
		Value:      raw.Value,
		Unit:       string(raw.Unit),
		LoincCode:  string(raw.LoincCode),
		SnomedCode: string(raw.SnomedCode),
	}
	if f.Operator == "" {
		f.Operator = OperatorEquals
	}
	return nil
}

// PrimaryCondition is the normalized primary clinical condition of a
// criterion, with standard terminology codes where the service supplied them.
type PrimaryCondition struct {
	Term       string   `json:"term"`
	SnomedCode string   `json:"snomed_code"`
	ICD10Codes []string `json:"icd10_codes"`
	Synonyms   []string `json:"synonyms"`
}

// QualifierSet groups the severity/temporal/persistence qualifiers of an
// interpreted criterion.
type QualifierSet struct {
	Severity    []string `json:"severity"`
	Temporal    string   `json:"temporal"`
	Persistence string   `json:"persistence"`
}

// Interpretation is the structured output of interpreting one criterion.
type Interpretation struct {
	PrimaryCondition        PrimaryCondition `json:"primary_condition"`
	RelatedClinicalFindings []Finding        `json:"related_clinical_findings"`
	Qualifiers              QualifierSet     `json:"qualifiers"`
	Dependencies            []string         `json:"dependencies"`
	ClinicalCategory        string           `json:"clinical_category"`
}

// InterpretedCriterion pairs a criterion with its interpretation. When the
// external service failed irrecoverably, Interpreted holds the minimal
// fallback structure and InterpretationError records why.
type InterpretedCriterion struct {
	CriterionID         string         `json:"criterion_id"`
	CriterionText       string         `json:"criterion_text"`
	Interpreted         Interpretation `json:"interpreted_criterion"`
	InterpretationError string         `json:"interpretation_error,omitempty"`
}

// FallbackInterpretation builds the documented minimal structure for a
// criterion whose interpretation failed: the record's own parsed components
// carried over, no clinical findings.
func FallbackInterpretation(rec CriterionRecord) Interpretation {
	category := rec.ClinicalCategory
	if category == "" {
		category = CategoryGeneral
	}
	return Interpretation{
		PrimaryCondition: PrimaryCondition{
			Term:       rec.PrimaryCondition,
			ICD10Codes: []string{},
			Synonyms:   []string{},
		},
		RelatedClinicalFindings: []Finding{},
		Qualifiers: QualifierSet{
			Severity:    copyStrings(rec.Qualifiers),
			Temporal:    rec.PersistenceRequirement,
			Persistence: rec.PersistenceRequirement,
		},
		Dependencies:     copyStrings(rec.ConditionalRequirements),
		ClinicalCategory: category,
	}
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
