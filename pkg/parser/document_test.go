package parser_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/myusername/match-report-scraper/pkg/models"
	"github.com/myusername/match-report-scraper/pkg/parser"
)

func TestHTMLSource_FlattensTables(t *testing.T) {
	pages, err := parser.HTMLSource{}.Pages([]byte(sampleHTML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected a single page, got %d", len(pages))
	}

	texts := parser.Texts(parser.Segment(pages[0]))
	want := []string{
		"Liga A, Spiel Nr. 123 am 01.01.24",
		"Heim: TV Musterstadt",
		`"Nr.","Spielername","Tore"`,
		`"7","Max Mustermann","5"`,
		"Gast: HSG Beispielhausen",
		`"Nr.","Spielername"`,
		`"3","Paul Probe"`,
		`"Endstand","3:1 (1:0), Sieger TV Musterstadt"`,
		"Spielverlauf",
		`"18:00:05","00:00","","Anpfiff"`,
		`"18:05:10","05:05","1:0","Tor durch 7"`,
	}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("lines =\n%q\nwant\n%q", texts, want)
	}
}

func TestParseDocument_HTML(t *testing.T) {
	r, err := parser.ParseDocument(parser.HTMLSource{}, []byte(sampleHTML), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.OK || r.Record.ID() != "123" {
		t.Fatalf("unexpected record %+v", r.Record)
	}
	if r.Record.Result.Winner != "TV Musterstadt" {
		t.Errorf("winner = %q", r.Record.Result.Winner)
	}
	if len(r.Record.Roster.Home) != 1 || len(r.Record.Roster.Away) != 1 {
		t.Errorf("roster = %+v", r.Record.Roster)
	}
	if len(r.Record.Timeline) != 2 || r.Record.Timeline[0].Description != "Anpfiff" {
		t.Errorf("timeline = %+v", r.Record.Timeline)
	}
}

func TestParseDocument_HTMLLabelValueCells(t *testing.T) {
	doc := `<html><body><table>
<tr><td>Liga A</td><td>Spiel Nr. 123 am 01.01.24</td></tr>
<tr><td>Heim: TV Musterstadt</td></tr>
<tr><th>Nr.</th><th>Spielername</th><th>Tore</th></tr>
<tr><td>7</td><td>Mustermann, Max</td><td>5</td></tr>
<tr><td>12</td><td>Beispiel, Jan</td><td>2</td></tr>
</table></body></html>`

	r, err := parser.ParseDocument(parser.HTMLSource{}, []byte(doc), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.OK || r.Record.ID() != "123" || r.Record.DateString() != "01.01.24" || r.Record.League != "Liga A" {
		t.Fatalf("unexpected header fields %+v", r.Record)
	}

	want := []models.PlayerEntry{
		{Number: "7", Name: "Mustermann, Max"},
		{Number: "12", Name: "Beispiel, Jan"},
	}
	if !reflect.DeepEqual(r.Record.Roster.Home, want) {
		t.Errorf("home roster = %+v, want %+v", r.Record.Roster.Home, want)
	}
}

func TestParseDocument_HTMLGameNumberCell(t *testing.T) {
	doc := `<table><tr><td>Spiel Nr.</td><td>456</td></tr></table>`

	r, err := parser.ParseDocument(parser.HTMLSource{}, []byte(doc), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.OK || r.Record.ID() != "456" {
		t.Fatalf("expected game id 456, got %+v", r.Record)
	}
}

func TestParseDocument_PlainPagesBounded(t *testing.T) {
	r, err := parser.ParseDocument(parser.PlainSource{}, []byte(sampleReport), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.OK {
		t.Fatal("expected success from the first page")
	}
	if len(r.Record.Timeline) != 0 {
		t.Errorf("timeline lives on page two, got %d events", len(r.Record.Timeline))
	}
}

type failingSource struct{}

func (failingSource) Pages([]byte) ([]string, error) {
	return nil, errors.New("boom")
}

func TestParseDocument_InputUnavailable(t *testing.T) {
	tests := []struct {
		name string
		src  parser.TextSource
		data []byte
	}{
		{"empty document", parser.PlainSource{}, nil},
		{"source failure", failingSource{}, []byte("x")},
		{"whitespace only", parser.PlainSource{}, []byte(" \n\t\f\n")},
		{"not a pdf", parser.PDFSource{}, []byte("hello")},
		{"broken pdf", parser.PDFSource{}, []byte("%PDF-1.4\ngarbage")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseDocument(tt.src, tt.data, 0)
			if !errors.Is(err, parser.ErrInputUnavailable) {
				t.Fatalf("expected ErrInputUnavailable, got %v", err)
			}
		})
	}
}

func TestDetectSource(t *testing.T) {
	tests := []struct {
		name string
		data string
		want parser.TextSource
	}{
		{"pdf", "%PDF-1.7\n...", parser.PDFSource{MaxPages: 2}},
		{"html", sampleHTML, parser.HTMLSource{}},
		{"fragment", "<table><tr><td>x</td></tr></table>", parser.HTMLSource{}},
		{"text", sampleReport, parser.PlainSource{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parser.DetectSource([]byte(tt.data), 2); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
