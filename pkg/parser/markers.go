package parser

import "strings"

// Markers are the anchor strings that identify a line's role in a report.
// Document variants drift, so every marker can be overridden from configuration.
type Markers struct {
	GameNumber   string `yaml:"game_number"`
	Date         string `yaml:"date"`
	Home         string `yaml:"home"`
	Away         string `yaml:"away"`
	FinalScore   string `yaml:"final_score"`
	Winner       string `yaml:"winner"`
	Pairing      string `yaml:"pairing"`
	RosterHeader string `yaml:"roster_header"`
	Timeline     string `yaml:"timeline"`
}

// DefaultMarkers returns the anchors used by the German "Spielbericht" layout
func DefaultMarkers() Markers {
	return Markers{
		GameNumber:   "Spiel Nr.",
		Date:         "am",
		Home:         "Heim:",
		Away:         "Gast:",
		FinalScore:   "Endstand",
		Winner:       "Sieger",
		Pairing:      "Begegnung",
		RosterHeader: "Spielername",
		Timeline:     "Spielverlauf",
	}
}

// Merge returns m with every empty field taken from fallback
func (m Markers) Merge(fallback Markers) Markers {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}
	return Markers{
		GameNumber:   pick(m.GameNumber, fallback.GameNumber),
		Date:         pick(m.Date, fallback.Date),
		Home:         pick(m.Home, fallback.Home),
		Away:         pick(m.Away, fallback.Away),
		FinalScore:   pick(m.FinalScore, fallback.FinalScore),
		Winner:       pick(m.Winner, fallback.Winner),
		Pairing:      pick(m.Pairing, fallback.Pairing),
		RosterHeader: pick(m.RosterHeader, fallback.RosterHeader),
		Timeline:     pick(m.Timeline, fallback.Timeline),
	}
}

// hasMarkerPrefix reports whether text starts with marker, ignoring a leading
// quote left over from a delimited table cell.
func hasMarkerPrefix(text, marker string) bool {
	if marker == "" {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(text, `"`), marker)
}

// isMarkerOnly reports whether the line holds nothing but the marker
func isMarkerOnly(text, marker string) bool {
	return marker != "" && clean(text) == marker
}

// clean strips whitespace and the quote and delimiter debris of table cells
func clean(s string) string {
	return strings.Trim(s, "\", \t;")
}
