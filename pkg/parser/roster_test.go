package parser_test

import (
	"testing"

	"github.com/myusername/match-report-scraper/pkg/parser"
)

func TestParsePlayerLine(t *testing.T) {
	tests := []struct {
		text   string
		ok     bool
		number string
		name   string
	}{
		{"7 Max Mustermann", true, "7", "Max Mustermann"},
		{`"7","Max Mustermann","5"`, true, "7", "Max Mustermann"},
		{"3 Paul Probe 4", true, "3", "Paul Probe"},
		{`"7","Mustermann, Max","5"`, true, "7", "Mustermann, Max"},
		{`"12";"Beispiel, Jan"`, true, "12", "Beispiel, Jan"},
		{`7 "Max Mustermann"`, true, "7", "Max Mustermann"},
		{"7;Müller;2", true, "7", "Müller"},
		{"99\tÖzil Mesut", true, "99", "Özil Mesut"},
		{"Nr. Spielername Tore", false, "", ""},
		{"12:00:01 00:30 Tor", false, "", ""},
		{"7", false, "", ""},
		{"", false, "", ""},
		{"1234 Too Long", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p, ok := parser.ParsePlayerLine(tt.text)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (p.Number != tt.number || p.Name != tt.name) {
				t.Errorf("got %+v, want %s/%s", p, tt.number, tt.name)
			}
		})
	}
}

func TestRosterScanner_Transitions(t *testing.T) {
	s := parser.NewRosterScanner(parser.DefaultMarkers())

	steps := []struct {
		line string
		want parser.RosterState
	}{
		{"Liga A, Spiel Nr. 1 am 01.01.24", parser.Outside},
		{"Spielername", parser.Outside},
		{"Heim: TV A", parser.InHomeHeader},
		{"Trainer: Hans", parser.InHomeHeader},
		{"Nr. Spielername", parser.CollectingHome},
		{"7 Max", parser.CollectingHome},
		{"blank or artifact", parser.CollectingHome},
		{"Gast: TV B", parser.InAwayHeader},
		{"Nr. Spielername", parser.CollectingAway},
		{"Heim: TV A", parser.InHomeHeader},
		{"Gast: TV B", parser.InAwayHeader},
		{"Nr. Spielername", parser.CollectingAway},
		{"Spielverlauf", parser.Outside},
		{"8 Late Entry", parser.Outside},
	}

	for i, step := range steps {
		s.Feed(step.line)
		if got := s.State(); got != step.want {
			t.Fatalf("step %d (%q): state = %s, want %s", i, step.line, got, step.want)
		}
	}
}

func TestScanRoster_OnlyCollectsInsidePlayerLists(t *testing.T) {
	lines := linesOf(
		"1 Before Anything",
		"Heim: TV A",
		"2 Between Header And List",
		"Nr. Spielername",
		"7 Max Mustermann",
		"12 Jan Beispiel",
		"Gast: TV B",
		"3 In Away Header",
		`"Nr.","Spielername"`,
		`"21","Karl Test"`,
		"Spielverlauf",
		"4 After Timeline",
	)

	roster, diags := parser.ScanRoster(lines, parser.DefaultMarkers())

	if len(roster.Home) != 2 || roster.Home[0].Name != "Max Mustermann" || roster.Home[1].Number != "12" {
		t.Errorf("home roster = %+v", roster.Home)
	}
	if len(roster.Away) != 1 || roster.Away[0].Name != "Karl Test" {
		t.Errorf("away roster = %+v", roster.Away)
	}
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %+v", diags)
	}
}

func TestScanRoster_MissingListHeader(t *testing.T) {
	roster, diags := parser.ScanRoster(linesOf("Heim: TV A", "7 Max Mustermann"), parser.DefaultMarkers())

	if len(roster.Home) != 0 || len(roster.Away) != 0 {
		t.Fatalf("expected empty rosters, got %+v", roster)
	}
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %+v", diags)
	}
	for _, d := range diags {
		if d.Kind != parser.SectionNotFound {
			t.Errorf("unexpected kind %s", d.Kind)
		}
	}
}
