package parser

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

// TextSource turns document bytes into per-page text in page order
type TextSource interface {
	Pages(data []byte) ([]string, error)
}

// PDFSource reads the text layer of a PDF. MaxPages bounds the pages read; 0 reads all.
type PDFSource struct {
	MaxPages int
}

// Pages extracts the plain text of every page
func (s PDFSource) Pages(data []byte) (pages []string, err error) {
	// The pdf package panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("error reading PDF: %v", r)
		}
	}()

	// Open the PDF from memory
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}

	// Get the number of pages, bounded by MaxPages
	n := r.NumPage()
	if s.MaxPages > 0 && n > s.MaxPages {
		n = s.MaxPages
	}

	// Extract text from each page
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			// Keep the page slot so page order is preserved
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("error extracting text from page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// ReadPDFFile reads a PDF file and returns the text of its pages
func ReadPDFFile(path string, maxPages int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	return PDFSource{MaxPages: maxPages}.Pages(data)
}

// HTMLSource flattens an HTML export of a report into lines. Every table row
// becomes one line of quoted, comma-delimited cells, which is how the PDF text
// layer renders the same tables; headings, paragraphs and list items become
// plain lines.
type HTMLSource struct{}

// Pages returns the document as a single page
func (HTMLSource) Pages(data []byte) ([]string, error) {
	// Parse the HTML document
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML content: %w", err)
	}

	// Walk block elements in document order
	var lines []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, tr").Each(func(_ int, s *goquery.Selection) {
		if s.Is("tr") {
			if line := rowLine(s); line != "" {
				lines = append(lines, line)
			}
			return
		}
		// Text inside tables and lists is emitted with its row or item
		if s.ParentsFiltered("tr, li").Length() > 0 {
			return
		}
		if text := collapseSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	return []string{strings.Join(lines, "\n")}, nil
}

// rowLine renders a table row; single-cell rows are emitted unquoted
func rowLine(row *goquery.Selection) string {
	var cells []string
	row.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, collapseSpace(cell.Text()))
	})

	switch len(cells) {
	case 0:
		return ""
	case 1:
		return cells[0]
	}

	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PlainSource treats the input as already extracted text; form feeds separate pages
type PlainSource struct{}

// Pages splits the text on form feeds
func (PlainSource) Pages(data []byte) ([]string, error) {
	return strings.Split(string(data), "\f"), nil
}

// DetectSource picks a TextSource by sniffing the document bytes
func DetectSource(data []byte, maxPages int) TextSource {
	head := bytes.TrimSpace(data)
	if len(head) > 512 {
		head = head[:512]
	}
	switch {
	case bytes.HasPrefix(head, []byte("%PDF-")):
		return PDFSource{MaxPages: maxPages}
	case bytes.Contains(bytes.ToLower(head), []byte("<html")),
		bytes.Contains(bytes.ToLower(head), []byte("<!doctype html")),
		bytes.Contains(bytes.ToLower(head), []byte("<table")):
		return HTMLSource{}
	default:
		return PlainSource{}
	}
}

// ParseDocument extracts the text of data with src and runs the extractor over it.
// A failing source or a document without text yields ErrInputUnavailable.
func (e *Extractor) ParseDocument(src TextSource, data []byte, maxPages int) (Report, error) {
	if len(data) == 0 {
		return Report{}, fmt.Errorf("%w: empty document", ErrInputUnavailable)
	}

	// Extract the text layer
	pages, err := src.Pages(data)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}

	// Split into lines and make sure there is something to extract from
	lines := SegmentPages(pages, maxPages)
	if !hasText(lines) {
		return Report{}, fmt.Errorf("%w: no text extracted", ErrInputUnavailable)
	}

	e.log().Debug("document segmented", "pages", len(pages), "lines", len(lines))
	return e.Run(lines), nil
}

// ParseDocument runs the default extractor over a document
func ParseDocument(src TextSource, data []byte, maxPages int) (Report, error) {
	return defaultExtractor.ParseDocument(src, data, maxPages)
}

func hasText(lines []Line) bool {
	for _, l := range lines {
		if l.Text != "" {
			return true
		}
	}
	return false
}
