package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

// DefaultMinChars is the full-text length below which the primary
// extraction is considered a failure and the fallback engine is tried.
const DefaultMinChars = 500

// ErrNoText is returned when neither engine produced any text.
var ErrNoText = errors.New("no text could be extracted from PDF")

// Page is the text of one PDF page.
type Page struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Document is the extraction result for one PDF.
type Document struct {
	Pages    []Page `json:"pages"`
	FullText string `json:"full_text"`
	Engine   string `json:"engine"`
}

// Extractor reads PDF text with ledongthuc/pdf and falls back to pdfcpu
// when the primary output is shorter than MinChars.
type Extractor struct {
	MinChars int
	Logger   *logrus.Logger
}

// New returns an Extractor with the given fallback threshold.
func New(minChars int, logger *logrus.Logger) *Extractor {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Extractor{MinChars: minChars, Logger: logger}
}

// ExtractFile extracts text from the PDF at path.
func (e *Extractor) ExtractFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return e.ExtractBytes(data)
}

// ExtractBytes extracts text from an in-memory PDF.
func (e *Extractor) ExtractBytes(data []byte) (*Document, error) {
	pages, libErr := extractWithLibrary(data)
	doc := newDocument(pages, "ledongthuc")
	if libErr == nil && len(doc.FullText) >= e.MinChars {
		return doc, nil
	}

	e.Logger.WithFields(logrus.Fields{
		"chars": len(doc.FullText),
		"error": libErr,
	}).Debug("primary PDF extraction too short, trying pdfcpu")

	fbPages, fbErr := extractWithPDFCPU(data)
	if fbErr == nil {
		fb := newDocument(fbPages, "pdfcpu")
		if len(fb.FullText) > len(doc.FullText) {
			doc = fb
		}
	}

	if strings.TrimSpace(doc.FullText) == "" {
		if libErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoText, libErr)
		}
		return nil, ErrNoText
	}
	return doc, nil
}

// PageBreak is the delimiter placed before every non-first page.
func PageBreak(index int) string {
	return fmt.Sprintf("\n\n===PAGE %d===\n\n", index)
}

// JoinPages builds the page-delimited full text.
func JoinPages(pages []Page) string {
	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteString(PageBreak(p.Index))
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func newDocument(texts []string, engine string) *Document {
	doc := &Document{Engine: engine}
	for i, t := range texts {
		doc.Pages = append(doc.Pages, Page{Index: i, Text: t})
	}
	doc.FullText = JoinPages(doc.Pages)
	return doc
}

// extractWithLibrary reads rows with ledongthuc/pdf, falling back to the
// library's plain-text path when row extraction yields nothing.
func extractWithLibrary(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages = extractByRow(r, numPages)
	if totalTextLen(pages) > 0 {
		return pages, nil
	}

	pages = extractByPagePlainText(r, numPages)
	if totalTextLen(pages) > 0 {
		return pages, nil
	}
	return nil, fmt.Errorf("PDF library returned no text")
}

// extractByRow keeps the visual row order, which the label/value regexes
// downstream depend on.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return pages
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}

// readAllString drains r, returning "" on error.
func readAllString(r io.Reader) string {
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return string(data)
}
