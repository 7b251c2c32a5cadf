package parse

import (
	"strings"
	"sync"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// segState is the segmenter's position in a section.
type segState int

const (
	// stateAwaitingSection: no criteria introduction or boundary seen yet.
	stateAwaitingSection segState = iota
	// stateBetweenCriteria: criteria section entered, no record open.
	stateBetweenCriteria
	// stateInCriterion: a record is open and accumulating lines.
	stateInCriterion
)

// Segmenter walks section text line by line and groups lines into discrete
// criterion records. Criterion IDs are drawn from a run-scoped counter so
// they stay unique and strictly increasing across all sections of one
// guideline run.
type Segmenter struct {
	mu     sync.Mutex
	nextID int
}

// NewSegmenter creates a segmenter whose first criterion is criterion_001.
func NewSegmenter() *Segmenter {
	return &Segmenter{nextID: 1}
}

// Segment scans section text and returns the criterion records in document
// order. A section with a recognized introduction but no boundary lines
// yields an empty list, not an error.
func (s *Segmenter) Segment(sectionText string) []model.CriterionRecord {
	records := []model.CriterionRecord{}
	state := stateAwaitingSection
	var cur *model.CriterionRecord
	curSeq := 0

	for _, raw := range strings.Split(sectionText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || pageMarkerRe.MatchString(line) {
			continue
		}

		if state == stateAwaitingSection && introRe.MatchString(line) {
			state = stateBetweenCriteria
			continue
		}

		if isBoilerplate(line) {
			continue
		}

		stripped, boundary := stripBoundaryPrefix(line)

		// Inside the criteria section, unmarked lines still open criteria
		// when they look like one; otherwise they continue the current
		// record.
		if !boundary && state != stateAwaitingSection {
			if startsUpper(line) && len(line) >= minBareCriterionLen {
				boundary = true
				stripped = line
			}
		}

		switch {
		case boundary:
			if cur != nil {
				records = append(records, *cur)
			}
			curSeq = s.take()
			rec := ExtractComponents(stripped, curSeq)
			cur = &rec
			state = stateInCriterion
		case cur != nil:
			// Continuation: append and re-extract the full component set
			// from the accumulated text so incremental and final extraction
			// agree.
			rec := ExtractComponents(cur.CriterionText+" "+line, curSeq)
			cur = &rec
		}
	}

	if cur != nil {
		records = append(records, *cur)
	}
	return records
}

// take returns the next criterion sequence number.
func (s *Segmenter) take() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.nextID
	s.nextID++
	return n
}

// isBoilerplate reports whether a line is a known non-criterion artifact:
// URLs, page footers, bare dates, or overlong prose.
func isBoilerplate(line string) bool {
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	if dateLineRe.MatchString(line) {
		return true
	}
	return len(line) > maxCriterionLineLen
}

// stripBoundaryPrefix reports whether the line opens a new criterion and
// returns the line with its bullet/number/letter prefix removed.
func stripBoundaryPrefix(line string) (string, bool) {
	if !bulletPrefixRe.MatchString(line) &&
		!numberedPrefixRe.MatchString(line) &&
		!letteredPrefixRe.MatchString(line) {
		return line, false
	}
	stripped := bulletPrefixRe.ReplaceAllString(line, "")
	stripped = numberedPrefixRe.ReplaceAllString(stripped, "")
	stripped = letteredPrefixRe.ReplaceAllString(stripped, "")
	return stripped, true
}
