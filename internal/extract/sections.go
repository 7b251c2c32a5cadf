package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

var pageMarkerRe = regexp.MustCompile(`^--- PAGE (\d+) ---$`)

// SplitSections scans the page-marked full text and carves it into the
// recognized sections. A line is a header when it contains a configured
// header name case-insensitively and is not much longer than the name
// itself, which keeps body sentences that mention a section from opening
// one. Text before the first header belongs to no section.
func SplitSections(text string, headers []string) []model.Section {
	var sections []model.Section
	var current *model.Section
	var content []string
	page := 1

	flush := func() {
		if current == nil {
			return
		}
		raw := strings.TrimSpace(strings.Join(content, "\n"))
		current.RawText = raw
		current.FormattingMarkers = formattingMarkers(raw)
		sections = append(sections, *current)
		current = nil
		content = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if m := pageMarkerRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			page, _ = strconv.Atoi(m[1])
			continue
		}

		if name, ok := matchHeader(line, headers); ok {
			flush()
			current = &model.Section{Name: name, PageNumber: page}
			continue
		}

		if current != nil {
			content = append(content, line)
		}
	}
	flush()

	return sections
}

func matchHeader(line string, headers []string) (string, bool) {
	lower := strings.ToLower(line)
	for _, header := range headers {
		if strings.Contains(lower, strings.ToLower(header)) && len(line) < len(header)+50 {
			return header, true
		}
	}
	return "", false
}

var (
	bulletMarkerRe   = regexp.MustCompile(`(?m)^\s*(?:[•●○■□▪▫◦‣⁃]|-\s)`)
	numberedMarkerRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)
	letteredMarkerRe = regexp.MustCompile(`(?mi)^\s*[a-z][.)]\s`)
	indentMarkerRe   = regexp.MustCompile(`(?m)^\s{4,}`)
	tableMarkerRe    = regexp.MustCompile(`\|.+\|.+\|`)
)

// formattingMarkers records which list/layout styles a section's text uses.
func formattingMarkers(text string) []string {
	var markers []string
	if bulletMarkerRe.MatchString(text) {
		markers = append(markers, model.MarkerBulletPoints)
	}
	if numberedMarkerRe.MatchString(text) {
		markers = append(markers, model.MarkerNumberedList)
	}
	if letteredMarkerRe.MatchString(text) {
		markers = append(markers, model.MarkerLetteredList)
	}
	if indentMarkerRe.MatchString(text) {
		markers = append(markers, model.MarkerIndentation)
	}
	if tableMarkerRe.MatchString(text) {
		markers = append(markers, model.MarkerTable)
	}
	return markers
}
