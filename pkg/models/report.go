// Package models contains data structures for match report records
package models

// Unknown is the placeholder for text fields that could not be extracted
const Unknown = "unknown"

// NoScore is the placeholder for scores that could not be extracted
const NoScore = "0:0"

// Record holds everything extracted from a single match report
type Record struct {
	GameID   *string `json:"gameId"`
	Date     *string `json:"date"`
	League   string  `json:"league"`
	Teams    Teams   `json:"teams"`
	Result   Result  `json:"result"`
	Roster   Roster  `json:"roster"`
	Timeline []Event `json:"timeline"`
}

// Teams holds the names of both sides
type Teams struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// Result holds the score lines of a match
type Result struct {
	FinalScore    string `json:"finalScore"`
	HalfTimeScore string `json:"halfTimeScore"`
	Winner        string `json:"winner"`
}

// Roster holds the player lists of both sides in document order
type Roster struct {
	Home []PlayerEntry `json:"home"`
	Away []PlayerEntry `json:"away"`
}

// PlayerEntry is one line of a team's player list
type PlayerEntry struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Event is one entry of the match timeline
type Event struct {
	WallClockTime string  `json:"wallClockTime"`
	ElapsedTime   string  `json:"elapsedTime"`
	RunningScore  *string `json:"runningScore"`
	Description   string  `json:"description"`
}

// DefaultRecord returns a record with every field set to its default
func DefaultRecord() Record {
	return Record{
		League: Unknown,
		Teams:  Teams{Home: Unknown, Away: Unknown},
		Result: Result{FinalScore: NoScore, HalfTimeScore: NoScore, Winner: Unknown},
		Roster: Roster{
			Home: []PlayerEntry{},
			Away: []PlayerEntry{},
		},
		Timeline: []Event{},
	}
}

// HasGameID reports whether the record carries a non-empty game identifier
func (r Record) HasGameID() bool {
	return r.GameID != nil && *r.GameID != ""
}

// ID returns the game identifier or an empty string
func (r Record) ID() string {
	if r.GameID == nil {
		return ""
	}
	return *r.GameID
}

// DateString returns the raw date or an empty string
func (r Record) DateString() string {
	if r.Date == nil {
		return ""
	}
	return *r.Date
}

// Clone returns a deep copy of the record
func (r Record) Clone() Record {
	c := r
	c.GameID = cloneString(r.GameID)
	c.Date = cloneString(r.Date)
	c.Roster.Home = append([]PlayerEntry{}, r.Roster.Home...)
	c.Roster.Away = append([]PlayerEntry{}, r.Roster.Away...)
	c.Timeline = make([]Event, len(r.Timeline))
	for i, e := range r.Timeline {
		e.RunningScore = cloneString(e.RunningScore)
		c.Timeline[i] = e
	}
	return c
}

// StringPtr returns a pointer to a copy of s
func StringPtr(s string) *string {
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
