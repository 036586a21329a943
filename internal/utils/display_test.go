package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/myusername/match-report-scraper/pkg/models"
)

func sampleRecord() models.Record {
	rec := models.DefaultRecord()
	rec.GameID = models.StringPtr("123")
	rec.Teams = models.Teams{Home: "TV A", Away: "TV B, 2. Mannschaft"}
	rec.Roster.Home = []models.PlayerEntry{{Number: "7", Name: "Max Mustermann"}}
	rec.Roster.Away = []models.PlayerEntry{{Number: "3", Name: "Probe, Paul"}}
	rec.Timeline = []models.Event{
		{WallClockTime: "18:00:05", ElapsedTime: "00:00", Description: "Anpfiff"},
		{WallClockTime: "18:05:10", ElapsedTime: "05:05", RunningScore: models.StringPtr("1:0"), Description: `Tor "7"`},
	}
	return rec
}

func TestDisplayRecord(t *testing.T) {
	var buf bytes.Buffer
	DisplayRecord(&buf, sampleRecord())
	out := buf.String()

	for _, want := range []string{"MATCH 123 (?)", "TV A - TV B, 2. Mannschaft", "Max Mustermann", "1:0", "Anpfiff"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSaveRosterToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := SaveRosterToCSV(sampleRecord(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if lines[2] != `123,away,"TV B, 2. Mannschaft",3,"Probe, Paul"` {
		t.Errorf("row = %q", lines[2])
	}
}

func TestSaveTimelineToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.csv")
	if err := SaveTimelineToCSV(sampleRecord(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if lines[1] != "123,18:00:05,00:00,,Anpfiff" {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != `123,18:05:10,05:05,1:0,"Tor ""7"""` {
		t.Errorf("row = %q", lines[2])
	}
}

func TestSaveTimelineToCSV_ReadsBackAwkwardFields(t *testing.T) {
	rec := sampleRecord()
	rec.Timeline = []models.Event{
		{WallClockTime: "18:40:02", ElapsedTime: "40:02", RunningScore: models.StringPtr("3:1"), Description: "Tor, Siebenmeter\nNachspielzeit"},
		{WallClockTime: "18:41:00", ElapsedTime: "41:00", Description: ` "Auszeit" Gast`},
	}

	path := filepath.Join(t.TempDir(), "timeline.csv")
	if err := SaveTimelineToCSV(rec, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("written file is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[1][3] != "3:1" || rows[1][4] != "Tor, Siebenmeter\nNachspielzeit" {
		t.Errorf("row 1 = %q", rows[1])
	}
	if rows[2][3] != "" || rows[2][4] != ` "Auszeit" Gast` {
		t.Errorf("row 2 = %q", rows[2])
	}
}

func TestSaveRecordToJSON_KeepsEveryKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	if err := SaveRecordToJSON(models.DefaultRecord(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"gameId", "date", "league", "teams", "result", "roster", "timeline"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if m["gameId"] != nil {
		t.Errorf("gameId = %v, want null", m["gameId"])
	}
	if tl, ok := m["timeline"].([]any); !ok || len(tl) != 0 {
		t.Errorf("timeline = %v, want []", m["timeline"])
	}
}
