// Package persistence provides the SQLite turn journal: per-turn civilization
// summaries, the event log, and game metadata.
package persistence

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mini-civ/internal/engine"
)

// DB wraps a SQLite connection for the turn journal.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// NewGameID returns a fresh identifier for a journaled game.
func NewGameID() string {
	return uuid.NewString()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		civ INTEGER NOT NULL,
		name TEXT NOT NULL,
		human INTEGER NOT NULL,
		research TEXT NOT NULL,
		progress INTEGER NOT NULL,
		researched INTEGER NOT NULL,
		settlements INTEGER NOT NULL,
		units INTEGER NOT NULL,
		population INTEGER NOT NULL,
		wonders INTEGER NOT NULL,
		PRIMARY KEY (game_id, turn, civ)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		civ INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		game_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (game_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_events_game_turn ON events(game_id, turn);
	CREATE INDEX IF NOT EXISTS idx_turns_game_civ ON turns(game_id, civ);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSummaries writes one row per civilization. Re-saving a turn replaces it.
func (db *DB) SaveSummaries(gameID string, summaries []engine.CivSummary) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO turns
		(game_id, turn, civ, name, human, research, progress, researched,
		 settlements, units, population, wonders)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range summaries {
		human := 0
		if s.Human {
			human = 1
		}
		_, err := stmt.Exec(
			gameID, s.Turn, s.Civ, s.Name, human, s.Research, s.Progress,
			s.Researched, s.Settlements, s.Units, s.Population, s.Wonders,
		)
		if err != nil {
			return fmt.Errorf("insert summary turn %d civ %d: %w", s.Turn, s.Civ, err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends events to the journal.
func (db *DB) SaveEvents(gameID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (game_id, turn, civ, category, description) VALUES (?, ?, ?, ?, ?)",
			gameID, e.Turn, e.Civ, e.Category, e.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair for a game.
func (db *DB) SaveMeta(gameID, key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO game_meta (game_id, key, value) VALUES (?, ?, ?)",
		gameID, key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(gameID, key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE game_id = ? AND key = ?", gameID, key)
	return value, err
}

// SaveTurn journals the turn that just finished: summaries, that turn's events,
// and the last-turn marker. Call it from Game.OnTurnEnd.
func (db *DB) SaveTurn(gameID string, g *engine.Game) error {
	finished := g.Turn - 1

	summaries := g.Summaries()
	for i := range summaries {
		summaries[i].Turn = finished
	}
	if err := db.SaveSummaries(gameID, summaries); err != nil {
		return fmt.Errorf("save summaries: %w", err)
	}

	var events []engine.Event
	for _, e := range g.Events {
		if e.Turn == finished {
			events = append(events, e)
		}
	}
	if err := db.SaveEvents(gameID, events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}

	if err := db.SaveMeta(gameID, "last_turn", strconv.Itoa(finished)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	slog.Debug("turn journaled", "game", gameID, "turn", finished, "events", len(events))
	return nil
}

// RecentEvents returns the most recent events of a game, newest first.
func (db *DB) RecentEvents(gameID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT turn, civ, category, description FROM events WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		gameID, limit,
	)
	return events, err
}

// TurnHistory returns one civilization's summaries in turn order.
func (db *DB) TurnHistory(gameID string, civ int) ([]engine.CivSummary, error) {
	var rows []engine.CivSummary
	err := db.conn.Select(&rows,
		`SELECT turn, civ, name, human, research, progress, researched,
		        settlements, units, population, wonders
		 FROM turns WHERE game_id = ? AND civ = ? ORDER BY turn`,
		gameID, civ,
	)
	return rows, err
}
