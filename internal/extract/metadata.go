package extract

import (
	"regexp"
	"strings"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// Metadata is scraped from the leading pages only; guideline headers always
// appear before the body text.
const (
	metadataNameWindow = 1000
	metadataWindow     = 2000
)

var (
	guidelineNameRe = regexp.MustCompile(`(?i)MCG[:\s]+(.+?)(?:\n|\r|$)`)
	titleFallbackRe = regexp.MustCompile(`(?m)^([A-Z][^.!?\n]{20,100})`)
	orgCodeRe       = regexp.MustCompile(`(?i)ORG[:\s]+(\d+)`)

	editionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Edition[:\s]+(\d+(?:st|nd|rd|th)?\s*\d*)`),
		regexp.MustCompile(`(?i)Version[:\s]+([\d.]+)`),
		regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)\s+Edition`),
	}
	effectiveDateRes = []*regexp.Regexp{
		regexp.MustCompile(`Effective[:\s]+(\w+\s+\d+,\s+\d{4})`),
		regexp.MustCompile(`(\w+\s+\d{1,2},\s+\d{4})`),
		regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
	}
	specialtyRe = regexp.MustCompile(`(?i)Specialty[:\s]+(.+?)(?:\n|\r|$)`)
)

// ScrapeMetadata pulls the guideline-level fields out of extracted text.
// Fields the document does not announce stay empty.
func ScrapeMetadata(text string) model.ExtractionMetadata {
	var meta model.ExtractionMetadata

	head := window(text, metadataNameWindow)
	if m := guidelineNameRe.FindStringSubmatch(head); m != nil {
		meta.GuidelineName = strings.TrimSpace(m[1])
	} else if m := titleFallbackRe.FindStringSubmatch(text); m != nil {
		meta.GuidelineName = strings.TrimSpace(m[1])
	}

	head = window(text, metadataWindow)
	if m := orgCodeRe.FindStringSubmatch(head); m != nil {
		meta.OrgCode = m[1]
	}
	for _, re := range editionRes {
		if m := re.FindStringSubmatch(head); m != nil {
			meta.Edition = m[1]
			break
		}
	}
	for _, re := range effectiveDateRes {
		if m := re.FindStringSubmatch(head); m != nil {
			meta.EffectiveDate = m[1]
			break
		}
	}
	if m := specialtyRe.FindStringSubmatch(head); m != nil {
		meta.Specialty = strings.TrimSpace(m[1])
	}

	return meta
}

func window(text string, n int) string {
	if len(text) > n {
		return text[:n]
	}
	return text
}
