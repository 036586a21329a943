package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/myusername/match-report-scraper/pkg/models"
)

// RosterState is the position of the roster scanner within the document
type RosterState int

const (
	Outside RosterState = iota
	InHomeHeader
	InAwayHeader
	CollectingHome
	CollectingAway
)

func (s RosterState) String() string {
	switch s {
	case Outside:
		return "outside"
	case InHomeHeader:
		return "in-home-header"
	case InAwayHeader:
		return "in-away-header"
	case CollectingHome:
		return "collecting-home"
	case CollectingAway:
		return "collecting-away"
	default:
		return fmt.Sprintf("RosterState(%d)", int(s))
	}
}

// playerPattern: quoted or bare jersey number, a delimiter, then a name starting
// with a letter. A quoted name runs to its closing quote and may contain commas
// ("Mustermann, Max"). Blank-separated numeric columns after a bare name are dropped.
var playerPattern = regexp.MustCompile(`^"?(\d{1,3})"?[ \t]*[,;\t ][ \t]*` +
	`(?:"(\p{L}[^"]*)"|(\p{L}[^",;\t]*?)[ \t]*(?:[ \t]+[\d/:.-]+)*)` +
	`[ \t]*(?:[,;\t].*)?$`)

// ParsePlayerLine parses one player-list line
func ParsePlayerLine(text string) (models.PlayerEntry, bool) {
	m := playerPattern.FindStringSubmatch(text)
	if m == nil {
		return models.PlayerEntry{}, false
	}
	name := m[2]
	if name == "" {
		name = m[3]
	}
	return models.PlayerEntry{Number: m[1], Name: strings.TrimSpace(name)}, true
}

// RosterScanner tracks which team section a line belongs to and collects
// player entries while inside a player list. Feed it lines in document order.
type RosterScanner struct {
	markers Markers
	state   RosterState

	home, away             []models.PlayerEntry
	homeSeen, awaySeen     bool
	homeListed, awayListed bool
}

// NewRosterScanner returns a scanner in the Outside state
func NewRosterScanner(m Markers) *RosterScanner {
	return &RosterScanner{
		markers: m,
		state:   Outside,
		home:    []models.PlayerEntry{},
		away:    []models.PlayerEntry{},
	}
}

// State returns the current state
func (s *RosterScanner) State() RosterState {
	return s.state
}

// Feed advances the scanner by one trimmed line
func (s *RosterScanner) Feed(text string) {
	switch {
	case hasMarkerPrefix(text, s.markers.Timeline):
		s.state = Outside
		return
	case hasMarkerPrefix(text, s.markers.Home):
		s.state = InHomeHeader
		s.homeSeen = true
		return
	case hasMarkerPrefix(text, s.markers.Away):
		s.state = InAwayHeader
		s.awaySeen = true
		return
	}

	switch s.state {
	case InHomeHeader:
		if strings.Contains(text, s.markers.RosterHeader) {
			s.state = CollectingHome
			s.homeListed = true
		}
	case InAwayHeader:
		if strings.Contains(text, s.markers.RosterHeader) {
			s.state = CollectingAway
			s.awayListed = true
		}
	case CollectingHome:
		if p, ok := ParsePlayerLine(text); ok {
			s.home = append(s.home, p)
		}
	case CollectingAway:
		if p, ok := ParsePlayerLine(text); ok {
			s.away = append(s.away, p)
		}
	}
}

// Roster returns the players collected so far
func (s *RosterScanner) Roster() models.Roster {
	return models.Roster{
		Home: append([]models.PlayerEntry{}, s.home...),
		Away: append([]models.PlayerEntry{}, s.away...),
	}
}

// Diagnostics reports the team sections whose player list was never found
func (s *RosterScanner) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	check := func(team string, seen, listed bool) {
		switch {
		case !seen:
			diags = append(diags, Diagnostic{
				Kind:    SectionNotFound,
				Line:    -1,
				Message: fmt.Sprintf("no %s team section", team),
			})
		case !listed:
			diags = append(diags, Diagnostic{
				Kind:    SectionNotFound,
				Line:    -1,
				Message: fmt.Sprintf("no player list header in %s team section", team),
			})
		}
	}
	check("home", s.homeSeen, s.homeListed)
	check("away", s.awaySeen, s.awayListed)
	return diags
}

// ScanRoster runs a fresh scanner over lines
func ScanRoster(lines []Line, m Markers) (models.Roster, []Diagnostic) {
	s := NewRosterScanner(m)
	for _, l := range lines {
		s.Feed(l.Text)
	}
	return s.Roster(), s.Diagnostics()
}
