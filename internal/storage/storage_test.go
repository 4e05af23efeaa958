package storage

import (
	"testing"
	"time"

	"nfl-game-dates/internal/game"
)

func sampleGames() []*game.Game {
	return []*game.Game{
		{
			TeamAway:  "New Orleans Saints",
			TeamHome:  "Green Bay Packers",
			StartTime: time.Date(2011, time.September, 8, 20, 40, 0, 0, time.UTC),
			AwayScores: game.ScoreLine{
				Quarters: [4]int{10, 10, 7, 7},
				Overtime: "0",
				Final:    34,
			},
			HomeScores: game.ScoreLine{
				Quarters: [4]int{14, 7, 14, 7},
				Overtime: "0",
				Final:    42,
			},
			AwayRecord:   "0-1",
			HomeRecord:   "1-0",
			BoxscoreURL:  "https://example.com/boxscores/201109080gnb.htm",
			BoxscoreHTML: "<html>...</html>",
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	archive := NewSeasonArchive(2011)
	archive.SetWeek(1, sampleGames())

	if err := store.SaveSeason(archive); err != nil {
		t.Fatalf("SaveSeason failed: %v", err)
	}

	loaded, err := store.LoadSeason(2011)
	if err != nil {
		t.Fatalf("LoadSeason failed: %v", err)
	}
	if loaded.Year != 2011 {
		t.Errorf("Year = %d, want 2011", loaded.Year)
	}
	if loaded.UpdatedAt == "" {
		t.Error("UpdatedAt should be set after save")
	}

	games, ok := loaded.Week(1)
	if !ok {
		t.Fatal("week 1 missing from loaded archive")
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.TeamAway != "New Orleans Saints" || g.TeamHome != "Green Bay Packers" {
		t.Errorf("teams = %q/%q", g.TeamAway, g.TeamHome)
	}
	if g.AwayScores.Final != 34 || g.HomeScores.Final != 42 {
		t.Errorf("finals = %d/%d", g.AwayScores.Final, g.HomeScores.Final)
	}
	if g.BoxscoreHTML == "" {
		t.Error("BoxscoreHTML provenance lost in round trip")
	}
}

func TestLoadMissingSeason(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	archive, err := store.LoadSeason(1999)
	if err != nil {
		t.Fatalf("LoadSeason failed: %v", err)
	}
	if archive.Year != 1999 || len(archive.Weeks) != 0 {
		t.Errorf("expected an empty archive, got %+v", archive)
	}
}

func TestSetWeekGrows(t *testing.T) {
	archive := NewSeasonArchive(2009)
	archive.SetWeek(3, sampleGames())

	if len(archive.Weeks) != 3 {
		t.Fatalf("expected 3 week slots, got %d", len(archive.Weeks))
	}
	if _, ok := archive.Week(1); ok {
		t.Error("week 1 should not be present")
	}
	if _, ok := archive.Week(3); !ok {
		t.Error("week 3 should be present")
	}
	if _, ok := archive.Week(4); ok {
		t.Error("week 4 should not be present")
	}
}

func TestYears(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, year := range []int{2009, 2010} {
		if err := store.SaveSeason(NewSeasonArchive(year)); err != nil {
			t.Fatalf("SaveSeason(%d) failed: %v", year, err)
		}
	}

	years, err := store.Years()
	if err != nil {
		t.Fatalf("Years failed: %v", err)
	}
	if len(years) != 2 {
		t.Fatalf("expected 2 years, got %v", years)
	}
}
