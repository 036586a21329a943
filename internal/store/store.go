// Package store persists extracted match records in SQLite
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/myusername/match-report-scraper/pkg/models"
)

// ErrIncompleteRecord is returned when a record without game id is saved
var ErrIncompleteRecord = errors.New("record has no game id")

// ErrNotFound is returned when no record exists for a game id
var ErrNotFound = errors.New("record not found")

// Store manages the match report database
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// init creates the schema
func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS match_reports (
			game_id         TEXT PRIMARY KEY,
			game_date       TEXT,
			league          TEXT NOT NULL,
			home_team       TEXT NOT NULL,
			away_team       TEXT NOT NULL,
			final_score     TEXT NOT NULL,
			half_time_score TEXT NOT NULL,
			winner          TEXT NOT NULL,
			roster_json     TEXT NOT NULL,
			timeline_json   TEXT NOT NULL,
			updated_at      TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Save inserts the record or replaces the stored one with the same game id
func (s *Store) Save(ctx context.Context, rec models.Record) error {
	if !rec.HasGameID() {
		return ErrIncompleteRecord
	}

	roster, err := json.Marshal(rec.Roster)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	timeline, err := json.Marshal(rec.Timeline)
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_reports (
			game_id, game_date, league, home_team, away_team,
			final_score, half_time_score, winner, roster_json, timeline_json, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_id) DO UPDATE SET
			game_date = excluded.game_date,
			league = excluded.league,
			home_team = excluded.home_team,
			away_team = excluded.away_team,
			final_score = excluded.final_score,
			half_time_score = excluded.half_time_score,
			winner = excluded.winner,
			roster_json = excluded.roster_json,
			timeline_json = excluded.timeline_json,
			updated_at = excluded.updated_at
	`, rec.ID(), rec.Date, rec.League, rec.Teams.Home, rec.Teams.Away,
		rec.Result.FinalScore, rec.Result.HalfTimeScore, rec.Result.Winner,
		string(roster), string(timeline), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", rec.ID(), err)
	}
	return nil
}

// Get loads the record stored for gameID
func (s *Store) Get(ctx context.Context, gameID string) (models.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT game_id, game_date, league, home_team, away_team,
			final_score, half_time_score, winner, roster_json, timeline_json
		FROM match_reports WHERE game_id = ?
	`, gameID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrNotFound
	}
	return rec, err
}

// List returns all stored records ordered by game id
func (s *Store) List(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, game_date, league, home_team, away_team,
			final_score, half_time_score, winner, roster_json, timeline_json
		FROM match_reports ORDER BY game_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored records
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_reports`).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (models.Record, error) {
	rec := models.DefaultRecord()
	var (
		gameID           string
		date             sql.NullString
		roster, timeline string
	)
	err := row.Scan(&gameID, &date, &rec.League, &rec.Teams.Home, &rec.Teams.Away,
		&rec.Result.FinalScore, &rec.Result.HalfTimeScore, &rec.Result.Winner, &roster, &timeline)
	if err != nil {
		return models.Record{}, err
	}

	rec.GameID = models.StringPtr(gameID)
	if date.Valid {
		rec.Date = models.StringPtr(date.String)
	}
	if err := json.Unmarshal([]byte(roster), &rec.Roster); err != nil {
		return models.Record{}, fmt.Errorf("failed to decode roster of %s: %w", gameID, err)
	}
	if err := json.Unmarshal([]byte(timeline), &rec.Timeline); err != nil {
		return models.Record{}, fmt.Errorf("failed to decode timeline of %s: %w", gameID, err)
	}
	return rec, nil
}
