package game

import (
	"testing"
	"time"
)

func mkGame(away, home string, awayScores, homeScores [6]int) *Game {
	return &Game{
		TeamAway: away,
		TeamHome: home,
		AwayScores: ScoreLine{
			Quarters: [4]int{awayScores[0], awayScores[1], awayScores[2], awayScores[3]},
			Overtime: "0",
			Final:    awayScores[5],
		},
		HomeScores: ScoreLine{
			Quarters: [4]int{homeScores[0], homeScores[1], homeScores[2], homeScores[3]},
			Overtime: "0",
			Final:    homeScores[5],
		},
	}
}

func TestGameString(t *testing.T) {
	g := mkGame("New Orleans Saints", "Green Bay Packers",
		[6]int{10, 10, 7, 7, 0, 34}, [6]int{14, 7, 14, 7, 0, 42})
	g.StartTime = time.Date(2011, time.September, 8, 20, 40, 0, 0, time.UTC)

	want := "New Orleans Saints at Green Bay Packers, 2011-09-08 20:40"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dallas Cowboys", "Cowboys"},
		{"Green Bay Packers", "Packers"},
		{"Washington Football Team", "Football Team"},
		{"49ers", "49ers"},
	}

	for _, tt := range tests {
		if got := ShortName(tt.in); got != tt.want {
			t.Errorf("ShortName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		awayScores [6]int
		homeScores [6]int
		want       Tag
	}{
		{
			// Margin 20, halftime leader won: blowout.
			name:       "wire to wire blowout",
			awayScores: [6]int{3, 7, 0, 0, 0, 10},
			homeScores: [6]int{14, 7, 3, 6, 0, 30},
			want:       TagBad,
		},
		{
			name:       "one score game",
			awayScores: [6]int{7, 7, 7, 0, 0, 21},
			homeScores: [6]int{7, 3, 7, 7, 0, 24},
			want:       TagGood,
		},
		{
			// Home trailed 7-14 at the half and won by 7.
			name:       "second half comeback",
			awayScores: [6]int{7, 7, 7, 7, 0, 28},
			homeScores: [6]int{0, 7, 14, 14, 0, 35},
			want:       TagGood,
		},
		{
			// Margin 14 with 64 combined points.
			name:       "two score shootout",
			awayScores: [6]int{14, 11, 0, 0, 0, 25},
			homeScores: [6]int{7, 14, 10, 8, 0, 39},
			want:       TagGood,
		},
		{
			// Margin 12, low scoring, no comeback: neither tag.
			name:       "ordinary game",
			awayScores: [6]int{0, 3, 0, 7, 0, 10},
			homeScores: [6]int{7, 3, 6, 6, 0, 22},
			want:       TagNone,
		},
		{
			// Margin 20 but the halftime leader lost; the comeback
			// clause wins over the blowout clause.
			name:       "blowout comeback",
			awayScores: [6]int{14, 7, 0, 0, 0, 21},
			homeScores: [6]int{0, 7, 17, 17, 0, 41},
			want:       TagGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mkGame("Away Team", "Home Team", tt.awayScores, tt.homeScores)
			if got := Classify(g); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordString(t *testing.T) {
	if got := (Record{Wins: 7, Losses: 2}).String(); got != "7-2" {
		t.Errorf("Record.String() = %q, want 7-2", got)
	}
	if got := (Record{Wins: 7, Losses: 2, Ties: 1}).String(); got != "7-2-1" {
		t.Errorf("Record.String() = %q, want 7-2-1", got)
	}
}

func TestRecordsByWeek(t *testing.T) {
	week1 := []*Game{
		mkGame("Lions", "Bears", [6]int{0, 7, 7, 0, 0, 14}, [6]int{7, 7, 7, 0, 0, 21}),
		mkGame("Packers", "Vikings", [6]int{7, 10, 0, 0, 0, 17}, [6]int{3, 7, 0, 0, 0, 10}),
	}
	week2 := []*Game{
		mkGame("Bears", "Packers", [6]int{3, 7, 0, 0, 0, 10}, [6]int{0, 3, 7, 0, 0, 10}),
	}

	snapshots := RecordsByWeek([][]*Game{week1, week2}, 2)
	if len(snapshots) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snapshots))
	}

	// Before week 1 everyone is 0-0.
	for team, rec := range snapshots[0] {
		if rec != (Record{}) {
			t.Errorf("before week 1, %s = %v, want 0-0", team, rec)
		}
	}

	// Before week 2.
	if got := snapshots[1]["Bears"]; got != (Record{Wins: 1}) {
		t.Errorf("Bears before week 2 = %v, want 1-0", got)
	}
	if got := snapshots[1]["Lions"]; got != (Record{Losses: 1}) {
		t.Errorf("Lions before week 2 = %v, want 0-1", got)
	}

	// After the tie in week 2.
	if got := snapshots[2]["Bears"]; got != (Record{Wins: 1, Ties: 1}) {
		t.Errorf("Bears after week 2 = %v, want 1-0-1", got)
	}
	if got := snapshots[2]["Packers"]; got != (Record{Wins: 1, Ties: 1}) {
		t.Errorf("Packers after week 2 = %v, want 1-0-1", got)
	}
}
