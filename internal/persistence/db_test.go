package persistence

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/mini-civ/internal/engine"
	"github.com/talgya/mini-civ/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveMeta("g1", "seed", "42"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMeta("g1", "seed", "43"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMeta("g1", "seed")
	if err != nil || v != "43" {
		t.Errorf("GetMeta = %q, %v", v, err)
	}
	if _, err := db.GetMeta("g2", "seed"); err == nil {
		t.Error("meta leaked across games")
	}
}

func TestSaveTurnJournalsGame(t *testing.T) {
	db := openTestDB(t)
	gameID := NewGameID()

	m := world.Generate(world.SmallTestConfig())
	g := engine.NewGame(m, engine.Options{Seed: 5, ComputerPlayers: 2})
	settler := g.Human.Units.Values()[0]
	if g.FoundSettlement(settler.ID) == nil {
		t.Fatal("human could not found on its start tile")
	}

	var saveErr error
	g.OnTurnEnd = func(g *engine.Game) {
		if err := db.SaveTurn(gameID, g); err != nil && saveErr == nil {
			saveErr = err
		}
	}
	for i := 0; i < 3; i++ {
		g.EndTurn()
	}
	if saveErr != nil {
		t.Fatalf("SaveTurn: %v", saveErr)
	}

	history, err := db.TurnHistory(gameID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("history rows = %d, want 3", len(history))
	}
	for i, h := range history {
		if h.Turn != i+1 || !h.Human || h.Name != "Romans" {
			t.Errorf("row %d = %+v", i, h)
		}
	}
	if history[0].Settlements != 1 {
		t.Errorf("settlements = %d, want 1", history[0].Settlements)
	}

	last, err := db.GetMeta(gameID, "last_turn")
	if err != nil || last != "3" {
		t.Errorf("last_turn = %q, %v", last, err)
	}

	events, err := db.RecentEvents(gameID, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Fatal("no events journaled")
	}
	// The founding happened during turn 1 and is journaled with that turn's batch.
	sawFounding := false
	sawResearch := false
	for _, e := range events {
		if e.Turn < 1 || e.Turn > 3 {
			t.Errorf("event from turn %d", e.Turn)
		}
		if e.Civ == 0 && e.Category == "research" && strings.Contains(e.Description, "began researching") {
			sawResearch = true
		}
		if e.Civ == 0 && e.Category == "founding" {
			sawFounding = true
		}
	}
	if !sawResearch {
		t.Error("human research event missing")
	}
	if !sawFounding {
		t.Error("founding event missing")
	}
	if events[0].Turn < events[len(events)-1].Turn {
		t.Error("events not newest first")
	}
}

func TestRecentEventsLimit(t *testing.T) {
	db := openTestDB(t)
	var evs []engine.Event
	for i := 0; i < 10; i++ {
		evs = append(evs, engine.Event{Turn: i, Category: "production", Description: "x"})
	}
	if err := db.SaveEvents("g", evs); err != nil {
		t.Fatal(err)
	}
	got, err := db.RecentEvents("g", 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 || got[0].Turn != 9 {
		t.Errorf("got %+v", got)
	}
	if err := db.SaveEvents("g", nil); err != nil {
		t.Errorf("empty batch: %v", err)
	}
}
