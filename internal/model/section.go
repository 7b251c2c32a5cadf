package model

// Section is one named region of a guideline document, as produced by the
// extraction layer. Consumed read-only by the parsers.
type Section struct {
	Name              string   `json:"section_name"`
	PageNumber        int      `json:"page_number"`
	RawText           string   `json:"raw_text"`
	FormattingMarkers []string `json:"formatting_markers,omitempty"`
}

// FormattingMarker values recorded per section
const (
	MarkerBulletPoints = "bullet_points"
	MarkerNumberedList = "numbered_list"
	MarkerLetteredList = "lettered_list"
	MarkerIndentation  = "indentation"
	MarkerTable        = "table"
)

// Document is the complete output of the extraction capability: document-level
// metadata plus the recognized sections in document order.
type Document struct {
	Metadata ExtractionMetadata `json:"metadata"`
	Sections []Section          `json:"sections"`
	FullText string             `json:"full_text"`
}

// ExtractionMetadata carries document-level fields scraped from the leading
// pages of the guideline.
type ExtractionMetadata struct {
	Filename      string `json:"pdf_filename"`
	Path          string `json:"pdf_path"`
	GuidelineName string `json:"guideline_name"`
	OrgCode       string `json:"org_code"`
	Edition       string `json:"edition"`
	EffectiveDate string `json:"effective_date"`
	Specialty     string `json:"specialty"`
	ExtractedDate string `json:"extracted_date"`
}
