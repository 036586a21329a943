package parser

import (
	"regexp"
	"strings"

	"github.com/myusername/match-report-scraper/pkg/models"
)

// Separator between timeline columns: blanks in the PDF text layer, `","` in delimited exports
const timelineSep = `"?[ \t]*[,;\t ][ \t]*"?`

// eventPattern matches one timeline tuple: wall clock, elapsed time, optional running score, description
var eventPattern = regexp.MustCompile(`"?(\d{2}:\d{2}:\d{2})` + timelineSep + `(\d{2}:\d{2})` +
	`(?:` + timelineSep + `(\d{1,3}:\d{1,3}))?` +
	`(?:` + timelineSep + `(.*?))?"?\s*$`)

// FindSection returns the position of the first line equal to or beginning with marker
func FindSection(lines []Line, marker string) (int, bool) {
	for i, l := range lines {
		if hasMarkerPrefix(l.Text, marker) {
			return i, true
		}
	}
	return -1, false
}

// ExtractTimeline collects every event tuple from the timeline marker to the end
// of the document. found is false when the marker is absent; the timeline is
// then empty.
func ExtractTimeline(lines []Line, marker string) (events []models.Event, found bool) {
	events = []models.Event{}

	start, found := FindSection(lines, marker)
	if !found {
		return events, false
	}

	// Parse every line from the marker to the end of the document
	for i := start; i < len(lines); i++ {
		text := lines[i].Text
		if i == start {
			// Tuples may follow the marker on its own line
			text = strings.TrimLeft(text, `"`)
			text = strings.TrimSpace(strings.TrimPrefix(text, marker))
		}
		if event, ok := ParseEvent(text); ok {
			events = append(events, event)
		}
	}
	return events, true
}

// ParseEvent parses one timeline tuple from text
func ParseEvent(text string) (models.Event, bool) {
	m := eventPattern.FindStringSubmatch(text)
	if m == nil {
		return models.Event{}, false
	}

	event := models.Event{
		WallClockTime: m[1],
		ElapsedTime:   m[2],
		Description:   clean(m[4]),
	}
	if m[3] != "" {
		event.RunningScore = models.StringPtr(m[3])
	}
	return event, true
}
