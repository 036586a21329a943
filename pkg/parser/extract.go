// Package parser turns the flat text of a match report into a structured record.
//
// Extraction works line by line: an ordered list of keyword-anchored rules
// fills the header fields, a section scanner collects the timeline and a small
// state machine collects the rosters. Malformed lines never abort a pass; they
// leave defaults in place and are reported as diagnostics.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/myusername/match-report-scraper/pkg/models"
)

// Report is the outcome of one extraction pass, including its diagnostic payload
type Report struct {
	Record      models.Record `json:"record"`
	OK          bool          `json:"success"`
	Lines       []Line        `json:"lines"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
}

// Extractor holds the marker and rule configuration of an extraction.
// It is immutable after construction and safe for concurrent use.
type Extractor struct {
	markers Markers
	rules   []Rule
	logger  *slog.Logger
}

// Option configures an Extractor
type Option func(*Extractor)

// WithMarkers overrides the default anchors; empty fields keep their default
func WithMarkers(m Markers) Option {
	return func(e *Extractor) {
		e.markers = m.Merge(DefaultMarkers())
	}
}

// WithRules replaces the default rule list
func WithRules(rules []Rule) Option {
	return func(e *Extractor) {
		e.rules = append([]Rule(nil), rules...)
	}
}

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor with the default markers and rules
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{markers: DefaultMarkers()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rules == nil {
		e.rules = DefaultRules(e.markers)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract runs the default extractor over lines
func Extract(lines []Line) (models.Record, bool) {
	return defaultExtractor.Extract(lines)
}

// Markers returns the anchors in use
func (e *Extractor) Markers() Markers {
	return e.markers
}

// Rules returns the rule list in precedence order
func (e *Extractor) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Extract builds a record from lines. ok is false when no game id was found.
func (e *Extractor) Extract(lines []Line) (models.Record, bool) {
	r := e.Run(lines)
	return r.Record, r.OK
}

// Run builds a record from lines and returns it with the per-call diagnostics
func (e *Extractor) Run(lines []Line) Report {
	log := e.log()
	rec := models.DefaultRecord()
	var diags []Diagnostic

	// Header fields, one line at a time
	for _, l := range lines {
		if l.Text == "" {
			continue
		}
		diags = append(diags, e.applyRules(&rec, l)...)
	}
	// Team names printed on the line after their marker
	e.applyTeamFallback(&rec, lines)

	// Timeline section
	events, found := ExtractTimeline(lines, e.markers.Timeline)
	rec.Timeline = events
	if !found {
		diags = append(diags, Diagnostic{
			Kind:    SectionNotFound,
			Line:    -1,
			Message: fmt.Sprintf("timeline marker %q not found", e.markers.Timeline),
		})
	}

	// Player lists of both teams
	roster, rosterDiags := ScanRoster(lines, e.markers)
	rec.Roster = roster
	diags = append(diags, rosterDiags...)

	// A record without game id is still returned, flagged as incomplete
	ok := rec.HasGameID()
	if !ok {
		diags = append(diags, Diagnostic{
			Kind:    IncompleteRecord,
			Line:    -1,
			Message: "no game id found",
		})
		log.Info("extraction incomplete", "lines", len(lines), "diagnostics", len(diags))
	} else {
		log.Debug("extraction complete",
			"game_id", rec.ID(),
			"home_players", len(rec.Roster.Home),
			"away_players", len(rec.Roster.Away),
			"events", len(rec.Timeline))
	}

	if diags == nil {
		diags = []Diagnostic{}
	}
	return Report{
		Record:      rec,
		OK:          ok,
		Lines:       append([]Line{}, lines...),
		Diagnostics: diags,
	}
}

// applyRules offers one line to the rules in precedence order until one claims it
func (e *Extractor) applyRules(rec *models.Record, l Line) []Diagnostic {
	var diags []Diagnostic
	for _, r := range e.rules {
		if !r.Trigger(l.Text) {
			continue
		}
		// Trigger fired, now try to capture the fields
		groups := r.Pattern.FindStringSubmatch(l.Text)
		if groups == nil {
			e.log().Debug("rule triggered without match", "rule", r.Name, "line", l.Index, "text", l.Text)
			diags = append(diags, Diagnostic{
				Kind:    FieldExtractionMiss,
				Line:    l.Index,
				Rule:    r.Name,
				Message: fmt.Sprintf("pattern did not match %q", l.Text),
			})
			continue
		}
		r.Apply(rec, groups)
		e.log().Debug("rule applied", "rule", r.Name, "line", l.Index)
		return diags
	}
	return diags
}

// applyTeamFallback handles layouts where a team marker sits alone on a line and
// the name follows on the next non-empty line. It only fills teams still unknown.
func (e *Extractor) applyTeamFallback(rec *models.Record, lines []Line) {
	fill := func(field *string, marker string) {
		if *field != models.Unknown {
			return
		}
		for i, l := range lines {
			if !isMarkerOnly(l.Text, marker) {
				continue
			}
			if name, ok := e.nextValue(lines[i+1:]); ok {
				*field = name
				e.log().Debug("team taken from following line", "marker", marker, "line", l.Index)
				return
			}
		}
	}
	fill(&rec.Teams.Home, e.markers.Home)
	fill(&rec.Teams.Away, e.markers.Away)
}

// nextValue returns the first non-empty line unless it is itself an anchor or claimed by a rule
func (e *Extractor) nextValue(lines []Line) (string, bool) {
	for _, l := range lines {
		v := clean(l.Text)
		if v == "" {
			continue
		}
		if hasMarkerPrefix(v, e.markers.Timeline) || strings.Contains(v, e.markers.RosterHeader) {
			return "", false
		}
		for _, r := range e.rules {
			if r.Trigger(v) {
				return "", false
			}
		}
		return v, true
	}
	return "", false
}

func (e *Extractor) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}
