package parser

import "strings"

// Line is one line of extracted text. Text is trimmed for matching,
// Raw keeps the original for diagnostic display.
type Line struct {
	Index int    `json:"index"`
	Raw   string `json:"raw"`
	Text  string `json:"text"`
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n")

// Segment splits extracted text into ordered, indexed lines
func Segment(text string) []Line {
	if text == "" {
		return []Line{}
	}

	parts := strings.Split(lineBreaks.Replace(text), "\n")
	// A trailing newline does not start another line
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	lines := make([]Line, 0, len(parts))
	for i, raw := range parts {
		lines = append(lines, Line{
			Index: i,
			Raw:   raw,
			Text:  strings.TrimSpace(raw),
		})
	}
	return lines
}

// SegmentPages joins page texts in page order and segments the result.
// Only the first maxPages pages are considered; maxPages <= 0 keeps all.
func SegmentPages(pages []string, maxPages int) []Line {
	if maxPages > 0 && len(pages) > maxPages {
		pages = pages[:maxPages]
	}

	var b strings.Builder
	for _, page := range pages {
		b.WriteString(page)
		b.WriteString("\n")
	}
	return Segment(b.String())
}

// Texts returns the trimmed text of every line
func Texts(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}
