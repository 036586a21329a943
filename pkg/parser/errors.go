package parser

import "errors"

// ErrInputUnavailable is returned when the text-extraction step failed or
// produced no text. It is the only error an extraction surfaces.
var ErrInputUnavailable = errors.New("input unavailable")

// DiagnosticKind classifies the non-fatal conditions met during a pass
type DiagnosticKind string

const (
	// FieldExtractionMiss: a rule's trigger fired but its pattern captured nothing
	FieldExtractionMiss DiagnosticKind = "field_extraction_miss"
	// SectionNotFound: a structural marker is absent, the section stays empty
	SectionNotFound DiagnosticKind = "section_not_found"
	// IncompleteRecord: no game id after a full pass
	IncompleteRecord DiagnosticKind = "incomplete_record"
)

// Diagnostic describes one absorbed extraction problem. Line is -1 when the
// problem is not tied to a single line.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Line    int            `json:"line"`
	Rule    string         `json:"rule,omitempty"`
	Message string         `json:"message"`
}
