package parse

import (
	"strings"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// SegmentAlternatives scans the alternatives-to-admission section and returns
// one record per bulleted or numbered item. Alternatives sections are assumed
// well-bulleted: unmarked lines only continue the current item, never open a
// new one.
func SegmentAlternatives(sectionText string) []model.AlternativeRecord {
	alternatives := []model.AlternativeRecord{}
	if strings.TrimSpace(sectionText) == "" {
		return alternatives
	}

	var cur *model.AlternativeRecord

	for _, raw := range strings.Split(sectionText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || pageMarkerRe.MatchString(line) {
			continue
		}

		boundary := bulletPrefixRe.MatchString(line) || numberedPrefixRe.MatchString(line)
		if boundary {
			if cur != nil {
				alternatives = append(alternatives, *cur)
			}
			text := bulletPrefixRe.ReplaceAllString(line, "")
			text = numberedPrefixRe.ReplaceAllString(text, "")
			text = strings.TrimSpace(text)
			cur = &model.AlternativeRecord{
				AlternativeID:   model.AlternativeID(len(alternatives) + 1),
				AlternativeText: text,
				CareSetting:     determineCareSetting(text),
			}
			continue
		}
		if cur != nil {
			cur.AlternativeText += " " + line
		}
	}

	if cur != nil {
		alternatives = append(alternatives, *cur)
	}
	return alternatives
}

// determineCareSetting returns the first matching care setting in priority
// order, or the alternative-care default.
func determineCareSetting(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range careSettingTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Setting
			}
		}
	}
	return model.CareSettingDefault
}
