// Package parse segments raw guideline section text into discrete criterion
// and alternative records using a small line-oriented state machine and
// data-driven heuristic tables.
package parse

import (
	"regexp"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// Line-shape patterns used by the segmenters.
var (
	// pageMarkerRe matches the page markers the extraction layer injects.
	pageMarkerRe = regexp.MustCompile(`^--- PAGE \d+ ---$`)

	// introRe raises the criteria-section flag: an admission-introduction
	// sentence ending in a colon.
	introRe = regexp.MustCompile(`(?i)(admission|indicated|following).*:`)

	// dateLineRe matches bare leading dates, a common page-footer artifact.
	dateLineRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}`)

	// Boundary prefixes, stripped before the criterion text is stored.
	bulletPrefixRe   = regexp.MustCompile(`^[•●○■□▪▫◦‣⁃-]\s+`)
	numberedPrefixRe = regexp.MustCompile(`^\d+[.)]\s+`)
	letteredPrefixRe = regexp.MustCompile(`(?i)^[a-z][.)]\s+`)
)

// maxCriterionLineLen is the cutoff above which a line is treated as prose
// boilerplate rather than a criterion.
const maxCriterionLineLen = 200

// minBareCriterionLen is the minimum length for an unmarked line to open a
// new criterion once the criteria section has been entered.
const minBareCriterionLen = 15

// boilerplatePrefixes are literal line prefixes always skipped: URLs, page
// footers, and product banners.
var boilerplatePrefixes = []string{
	"http",
	"Page ",
	"ISC -",
}

// Component-extraction patterns.
var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	bracketedRe     = regexp.MustCompile(`\[[^\]]*\]`)

	// conjunctionSplitRe truncates the primary condition at the first
	// conjunction or subordinator.
	conjunctionSplitRe = regexp.MustCompile(`\s+(?:and|or|with|that|requiring|despite)\s+`)

	citationRe = regexp.MustCompile(`\((\d+)\)`)
)

// qualifierClasses are the fixed severity/temporal/trend/onset/refractoriness
// word classes matched case-insensitively against criterion text.
var qualifierClasses = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(severe|mild|moderate|major|minor)\b`),
	regexp.MustCompile(`(?i)\b(persistent|intermittent|acute|chronic|recurrent)\b`),
	regexp.MustCompile(`(?i)\b(progressive|worsening|deteriorating|improving)\b`),
	regexp.MustCompile(`(?i)\b(new|ongoing|recent|sudden)\b`),
	regexp.MustCompile(`(?i)\b(refractory|resistant|unresponsive)\b`),
}

// conditionalPatterns capture the clause following a conditional marker, up to
// the next comma, semicolon, or period.
var conditionalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:if|when|where)\s+([^,;.]+)`),
	regexp.MustCompile(`(?i)despite\s+([^,;.]+)`),
	regexp.MustCompile(`(?i)requiring\s+([^,;.]+)`),
	regexp.MustCompile(`(?i)with\s+([^,;.]+\s+(?:performed|administered|given))`),
}

// persistencePatterns are tried in order; the first match wins. Patterns
// without a capture group yield the bare "persistent" marker.
var persistencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:persists?|persisting)\s+(?:after|despite|for)\s+([^,;.]+)`),
	regexp.MustCompile(`(?i)(?:that|which)\s+(?:persists?|persisting)`),
	regexp.MustCompile(`(?i)ongoing\s+(?:after|despite|for)\s+([^,;.]+)`),
	regexp.MustCompile(`(?i)continues?\s+(?:after|despite|for)\s+([^,;.]+)`),
}

// categoryEntry maps a clinical category to its trigger keywords. Table order
// is the tie-break when several categories match.
type categoryEntry struct {
	Category string
	Keywords []string
}

// categoryTable assigns a clinical category from criterion text. Tunable
// data; keyword overlap (e.g. "fluid" mapping to metabolic) is a known
// heuristic limitation.
var categoryTable = []categoryEntry{
	{"hemodynamic", []string{"hemodynamic", "blood pressure", "hypotension", "shock", "bp"}},
	{"respiratory", []string{"respiratory", "hypoxemia", "oxygen", "breathing", "dyspnea", "tachypnea"}},
	{"mental_status", []string{"mental status", "altered", "confusion", "delirium", "consciousness"}},
	{"laboratory", []string{"laboratory", "lab", "coagulopathy", "platelet", "culture"}},
	{"metabolic", []string{"dehydration", "hydration", "fluid", "electrolyte"}},
	{"organ_dysfunction", []string{"organ dysfunction", "end organ", "organ failure"}},
	{"vital_signs", []string{"temperature", "heart rate", "pulse", "vital"}},
	{"infectious", []string{"bacteremia", "sepsis", "infection", "fever"}},
}

// careSettingEntry maps a care setting to its trigger keywords, checked in
// fixed priority order.
type careSettingEntry struct {
	Setting  string
	Keywords []string
}

var careSettingTable = []careSettingEntry{
	{model.CareSettingObservation, []string{"observation"}},
	{model.CareSettingEmergency, []string{"emergency", "ed "}},
	{model.CareSettingOutpatient, []string{"outpatient"}},
	{model.CareSettingHome, []string{"home"}},
	{model.CareSettingInfusion, []string{"infusion"}},
}
