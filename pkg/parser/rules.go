package parser

import (
	"regexp"
	"strings"

	"github.com/myusername/match-report-scraper/pkg/models"
)

// Rule recognizes a line by its trigger and pulls fields out of it with Pattern.
// Apply receives the submatches of Pattern on the triggering line.
type Rule struct {
	Name    string
	Trigger func(text string) bool
	Pattern *regexp.Regexp
	Apply   func(rec *models.Record, groups []string)
}

// Rule names of DefaultRules, in precedence order
const (
	RuleGameHeader = "game-header"
	RuleGameNumber = "game-number"
	RuleHomeTeam   = "home-team"
	RuleAwayTeam   = "away-team"
	RuleFinalScore = "final-score"
	RulePairing    = "pairing"
)

// DefaultRules builds the keyword-anchored rule list for the given markers.
// The slice order is the precedence: on each line the first rule whose trigger
// fires and whose pattern captures claims the line.
func DefaultRules(m Markers) []Rule {
	gameNumber := regexp.QuoteMeta(m.GameNumber)
	// Delimiter between a quoted label cell and its value cell: `"Label","value"` or `Label: value`
	cell := `"?\s*[,:;]?\s*"?`
	// The date marker is a word of its own, surrounded by any whitespace
	dateWord := regexp.MustCompile(`\s` + regexp.QuoteMeta(m.Date) + `\s`)

	return []Rule{
		{
			// "Liga A, Spiel Nr. 123 am 01.01.24"
			Name: RuleGameHeader,
			Trigger: func(text string) bool {
				return strings.Contains(text, m.GameNumber) && dateWord.MatchString(text)
			},
			// The league may sit in a cell of its own: `"Liga A","Spiel Nr. 123 am 01.01.24"`
			Pattern: regexp.MustCompile(`^"?(?:(.*?)"?\s*,\s*"?)?` + gameNumber + cell + `(\d+)\s+` +
				regexp.QuoteMeta(m.Date) + `\s+([^\s,"]+)`),
			Apply: func(rec *models.Record, g []string) {
				if league := clean(g[1]); league != "" {
					rec.League = league
				}
				rec.GameID = models.StringPtr(g[2])
				rec.Date = models.StringPtr(g[3])
			},
		},
		{
			Name:    RuleGameNumber,
			Trigger: func(text string) bool { return strings.Contains(text, m.GameNumber) },
			Pattern: regexp.MustCompile(gameNumber + cell + `(\d+)`),
			Apply: func(rec *models.Record, g []string) {
				rec.GameID = models.StringPtr(g[1])
			},
		},
		{
			Name:    RuleHomeTeam,
			Trigger: func(text string) bool { return hasMarkerPrefix(text, m.Home) },
			Pattern: regexp.MustCompile(`^"?` + regexp.QuoteMeta(m.Home) + cell + `([^"]*[^"\s])`),
			Apply: func(rec *models.Record, g []string) {
				rec.Teams.Home = clean(g[1])
			},
		},
		{
			Name:    RuleAwayTeam,
			Trigger: func(text string) bool { return hasMarkerPrefix(text, m.Away) },
			Pattern: regexp.MustCompile(`^"?` + regexp.QuoteMeta(m.Away) + cell + `([^"]*[^"\s])`),
			Apply: func(rec *models.Record, g []string) {
				rec.Teams.Away = clean(g[1])
			},
		},
		{
			// "Endstand","3:1 (1:0), Sieger Team X"
			Name:    RuleFinalScore,
			Trigger: func(text string) bool { return hasMarkerPrefix(text, m.FinalScore) },
			Pattern: regexp.MustCompile(`^"?` + regexp.QuoteMeta(m.FinalScore) + cell +
				`(\d+:\d+)(?:\s*\(\s*(\d+:\d+)\s*\))?(?:\s*,?\s*` + regexp.QuoteMeta(m.Winner) + `:?\s+([^"]*[^"\s]))?`),
			Apply: func(rec *models.Record, g []string) {
				rec.Result.FinalScore = g[1]
				if g[2] != "" {
					rec.Result.HalfTimeScore = g[2]
				}
				if winner := clean(g[3]); winner != "" {
					rec.Result.Winner = winner
				}
			},
		},
		{
			// "Begegnung","TV A - HSG B"
			Name:    RulePairing,
			Trigger: func(text string) bool { return hasMarkerPrefix(text, m.Pairing) },
			Pattern: regexp.MustCompile(`^"?` + regexp.QuoteMeta(m.Pairing) + cell +
				`([^"]*?[^"\s])\s+[-–]\s+([^"]*[^"\s])`),
			Apply: func(rec *models.Record, g []string) {
				rec.Teams.Home = clean(g[1])
				rec.Teams.Away = clean(g[2])
			},
		},
	}
}

// RuleNames returns the names of rules in precedence order
func RuleNames(rules []Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
