// Package utils provides utility functions for presenting extracted match reports
package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/myusername/match-report-scraper/pkg/models"
)

// DisplayRecord prints a match record as a console report
func DisplayRecord(w io.Writer, rec models.Record) {
	id := rec.ID()
	if id == "" {
		id = "?"
	}
	date := rec.DateString()
	if date == "" {
		date = "?"
	}

	fmt.Fprintf(w, "\n=========== MATCH %s (%s) ===========\n", id, date)
	fmt.Fprintf(w, "%-12s %s\n", "League:", rec.League)
	fmt.Fprintf(w, "%-12s %s - %s\n", "Teams:", rec.Teams.Home, rec.Teams.Away)
	fmt.Fprintf(w, "%-12s %s (%s), winner: %s\n", "Result:",
		rec.Result.FinalScore, rec.Result.HalfTimeScore, rec.Result.Winner)

	displayRoster(w, rec.Teams.Home, rec.Roster.Home)
	displayRoster(w, rec.Teams.Away, rec.Roster.Away)

	fmt.Fprintf(w, "\n%-8s | %-5s | %-5s | %s\n", "Time", "Clock", "Score", "Event")
	fmt.Fprintf(w, "%-8s | %-5s | %-5s | %s\n",
		strings.Repeat("-", 8), strings.Repeat("-", 5), strings.Repeat("-", 5), strings.Repeat("-", 30))
	for _, e := range rec.Timeline {
		score := ""
		if e.RunningScore != nil {
			score = *e.RunningScore
		}
		fmt.Fprintf(w, "%-8s | %-5s | %-5s | %s\n", e.WallClockTime, e.ElapsedTime, score, e.Description)
	}

	fmt.Fprintln(w, strings.Repeat("=", 50))
}

func displayRoster(w io.Writer, team string, players []models.PlayerEntry) {
	fmt.Fprintf(w, "\n%s (%d players)\n", team, len(players))
	for _, p := range players {
		fmt.Fprintf(w, "  %3s  %s\n", p.Number, p.Name)
	}
}

// SaveRosterToCSV writes both rosters of a record to a CSV file
func SaveRosterToCSV(rec models.Record, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Write header
	if err := w.Write([]string{"GameID", "Side", "Team", "Number", "Name"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	sides := []struct {
		side    string
		team    string
		players []models.PlayerEntry
	}{
		{"home", rec.Teams.Home, rec.Roster.Home},
		{"away", rec.Teams.Away, rec.Roster.Away},
	}

	// Write one row per player, home side first
	for _, s := range sides {
		for _, p := range s.players {
			if err := w.Write([]string{rec.ID(), s.side, s.team, p.Number, p.Name}); err != nil {
				return fmt.Errorf("failed to write player data: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// SaveTimelineToCSV writes the timeline of a record to a CSV file
func SaveTimelineToCSV(rec models.Record, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Write header
	if err := w.Write([]string{"GameID", "WallClockTime", "ElapsedTime", "RunningScore", "Description"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range rec.Timeline {
		// Events without a running score get an empty column
		score := ""
		if e.RunningScore != nil {
			score = *e.RunningScore
		}
		if err := w.Write([]string{rec.ID(), e.WallClockTime, e.ElapsedTime, score, e.Description}); err != nil {
			return fmt.Errorf("failed to write event data: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// SaveRecordToJSON writes a record as indented JSON
func SaveRecordToJSON(rec models.Record, filename string) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
