package render

import (
	"strings"
	"testing"
	"time"

	"nfl-game-dates/internal/game"
	"nfl-game-dates/internal/season"
)

func gameAt(away, home string, kickoff time.Time) *game.Game {
	return &game.Game{
		TeamAway:   away,
		TeamHome:   home,
		StartTime:  kickoff,
		AwayScores: game.ScoreLine{Overtime: "0", Final: 17},
		HomeScores: game.ScoreLine{Overtime: "0", Final: 20},
	}
}

func TestRenderTextBasic(t *testing.T) {
	kickoff := time.Date(2021, time.September, 26, 16, 5, 0, 0, time.UTC)
	games := []*game.Game{gameAt("Tennessee Titans", "Seattle Seahawks", kickoff)}

	out, err := Render(games, 2021, season.Week{Number: 2}, Options{Format: FormatText})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "Tennessee Titans at Seattle Seahawks, Sunday, Sep 26, 4:05 PM\n"
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRenderTimeSlotSeparator(t *testing.T) {
	early := time.Date(2021, time.September, 26, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		gap           time.Duration
		wantSeparator bool
	}{
		{"same window", 25 * time.Minute, false},
		{"exactly one hour", time.Hour, false},
		{"late window", 3*time.Hour + 5*time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := []*game.Game{
				gameAt("Detroit Lions", "Chicago Bears", early),
				gameAt("Dallas Cowboys", "Green Bay Packers", early.Add(tt.gap)),
			}

			out, err := Render(games, 2021, season.Week{Number: 3}, Options{Format: FormatText})
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			hasSeparator := strings.Contains(out, "\n\n")
			if hasSeparator != tt.wantSeparator {
				t.Errorf("separator present = %v, want %v\noutput: %q", hasSeparator, tt.wantSeparator, out)
			}

			htmlOut, err := Render(games, 2021, season.Week{Number: 3}, Options{Format: FormatHTML})
			if err != nil {
				t.Fatalf("Render (html) failed: %v", err)
			}
			if got := strings.Contains(htmlOut, "<br/>"); got != tt.wantSeparator {
				t.Errorf("html separator present = %v, want %v", got, tt.wantSeparator)
			}
		})
	}
}

func TestRenderTeamRecords(t *testing.T) {
	kickoff := time.Date(2021, time.October, 3, 13, 0, 0, 0, time.UTC)
	games := []*game.Game{gameAt("Tennessee Titans", "Seattle Seahawks", kickoff)}
	records := game.Records{
		"Tennessee Titans": {Wins: 2, Losses: 1},
		"Seattle Seahawks": {Wins: 2, Losses: 0, Ties: 1},
	}

	out, err := Render(games, 2021, season.Week{Number: 4}, Options{
		Format:      FormatText,
		TeamRecords: records,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(out, "Tennessee Titans (2-1) at Seattle Seahawks (2-0-1)") {
		t.Errorf("records missing or wrong: %q", out)
	}
}

func TestRenderQuality(t *testing.T) {
	kickoff := time.Date(2021, time.October, 3, 13, 0, 0, 0, time.UTC)
	good := gameAt("Detroit Lions", "Chicago Bears", kickoff)
	good.Tag = game.TagGood
	bad := gameAt("Dallas Cowboys", "Green Bay Packers", kickoff.Add(10*time.Minute))
	bad.Tag = game.TagBad

	out, err := Render([]*game.Game{good, bad}, 2021, season.Week{Number: 4}, Options{
		Format:         FormatText,
		IncludeQuality: true,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(out, "(good game)") || !strings.Contains(out, "(bad game)") {
		t.Errorf("quality annotations missing: %q", out)
	}

	// Without the flag, tags stay hidden.
	out, err = Render([]*game.Game{good}, 2021, season.Week{Number: 4}, Options{Format: FormatText})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, "good game") {
		t.Errorf("quality annotation leaked without the flag: %q", out)
	}
}

func TestRenderGamePassLinks(t *testing.T) {
	kickoff := time.Date(2021, time.September, 19, 16, 5, 0, 0, time.UTC)
	games := []*game.Game{gameAt("Tennessee Titans", "Seattle Seahawks", kickoff)}

	out, err := Render(games, 2021, season.Week{Number: 2}, Options{
		Format:          FormatHTML,
		IncludeGamePass: true,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := GamePassBaseURL + "titans-at-seahawks-2021-reg-2"
	if !strings.Contains(out, want) {
		t.Errorf("deep link %q missing from output: %q", want, out)
	}
	if !strings.HasPrefix(out, "<html><body>") || !strings.HasSuffix(out, "</body></html>") {
		t.Errorf("output is not wrapped as an HTML document: %q", out)
	}
}

func TestRenderPostseasonWeekRebased(t *testing.T) {
	kickoff := time.Date(2022, time.January, 15, 16, 30, 0, 0, time.UTC)
	games := []*game.Game{gameAt("Las Vegas Raiders", "Cincinnati Bengals", kickoff)}

	out, err := Render(games, 2021, season.Week{Round: season.RoundWildCard}, Options{
		Format:          FormatHTML,
		IncludeGamePass: true,
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// 2021 wild card is canonical week 19, but the deep link counts from
	// the start of the postseason.
	want := GamePassBaseURL + "raiders-at-bengals-2021-post-1"
	if !strings.Contains(out, want) {
		t.Errorf("deep link %q missing from output: %q", want, out)
	}
}

func TestRenderRejectsBadYear(t *testing.T) {
	if _, err := Render(nil, 1950, season.Week{Number: 1}, Options{Format: FormatText}); err == nil {
		t.Fatal("expected an error for an unsupported year")
	}
}
