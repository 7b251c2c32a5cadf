// Package extract pulls text, metadata, and named sections out of guideline
// PDF documents.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// Extractor turns a PDF file into a structured document.
type Extractor interface {
	Extract(path string) (*model.Document, error)
}

// PDFExtractor extracts page text via pdfcpu content streams, scrapes
// document metadata from the leading pages, and splits the text into the
// configured sections.
type PDFExtractor struct {
	pages   model.ExtractionConfig
	parser  model.ParserConfig
	verbose bool
	now     func() time.Time
}

// NewPDFExtractor builds an extractor for the given page range and section
// configuration.
func NewPDFExtractor(pages model.ExtractionConfig, parser model.ParserConfig, verbose bool) *PDFExtractor {
	return &PDFExtractor{
		pages:   pages,
		parser:  parser,
		verbose: verbose,
		now:     time.Now,
	}
}

// Extract reads the PDF at path and returns the document with metadata and
// sections populated. Page markers of the form "--- PAGE N ---" delimit pages
// in the full text so downstream parsers can recover page numbers.
func (e *PDFExtractor) Extract(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	conf := pdfmodel.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	start, end := e.pageRange(ctx.PageCount)
	var full strings.Builder
	nonEmpty := 0
	for pageNr := start; pageNr <= end; pageNr++ {
		pageText := extractPageText(ctx, pageNr)
		fmt.Fprintf(&full, "--- PAGE %d ---\n", pageNr)
		if pageText != "" {
			nonEmpty++
			full.WriteString(pageText)
			full.WriteByte('\n')
		}
	}
	if nonEmpty == 0 {
		return nil, fmt.Errorf("no text content found in %s", filepath.Base(path))
	}

	fullText := full.String()
	meta := ScrapeMetadata(fullText)
	meta.Filename = filepath.Base(path)
	meta.Path = path
	meta.ExtractedDate = e.now().UTC().Format(time.RFC3339)

	sections := SplitSections(fullText, e.parser.SectionHeaders)
	if e.verbose {
		fmt.Fprintf(os.Stderr, "extracted %d pages, %d sections from %s\n",
			end-start+1, len(sections), meta.Filename)
	}

	return &model.Document{
		Metadata: meta,
		Sections: sections,
		FullText: fullText,
	}, nil
}

// pageRange clamps the configured 1-based inclusive range to the document.
func (e *PDFExtractor) pageRange(pageCount int) (int, int) {
	start := e.pages.PageStart
	if start < 1 {
		start = 1
	}
	end := e.pages.PageEnd
	if end < 1 || end > pageCount {
		end = pageCount
	}
	if start > end {
		start = end
	}
	return start, end
}

func extractPageText(ctx *pdfmodel.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return extractTextFromStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextFromStream parses PDF content stream operators for text. Text
// positioning operators become line breaks so the section parsers keep their
// line orientation.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder

	lines := bytes.Split(data, []byte{'\n'})
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Tj operator: (text) Tj
		// TJ operator: [(text) -100 (more text)] TJ
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		}

		// ' operator: move to next line and show text
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if text := decodePDFString(m[1]); text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}
		}

		// Td/TD move to a new text position, T* to the next line.
		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) ||
			bytes.Equal(line, []byte("T*")) {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}

	return cleanPageText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '(':
				sb.WriteByte('(')
			case ')':
				sb.WriteByte(')')
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanPageText collapses horizontal whitespace runs and drops non-printable
// runes while keeping line breaks, which the criteria parsers depend on.
func cleanPageText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteByte('\n')
			prevSpace = true
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
