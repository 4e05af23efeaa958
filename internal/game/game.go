// Package game defines the parsed game record and derived attributes:
// quality tags and running team records.
package game

import (
	"fmt"
	"strings"
	"time"
)

// ScoreLine is one team's scoring by period. Overtime is kept as text so
// that a double-overtime game survives as the source's comma-joined value
// (e.g. "3,0") instead of being lossily normalized; it is "0" when the game
// ended in regulation.
type ScoreLine struct {
	Quarters [4]int `json:"quarters"`
	Overtime string `json:"overtime"`
	Final    int    `json:"final"`
}

// Halftime returns the team's score at the end of the second quarter.
func (s ScoreLine) Halftime() int {
	return s.Quarters[0] + s.Quarters[1]
}

// Game represents one played game parsed from a box score.
//
// StartTime carries the site's local clock text verbatim: it is parsed
// without a zone and never converted, because the source does not disclose
// which timezone it publishes.
type Game struct {
	TeamAway   string    `json:"team_away"`
	TeamHome   string    `json:"team_home"`
	StartTime  time.Time `json:"start_time"`
	AwayScores ScoreLine `json:"away_scores"`
	HomeScores ScoreLine `json:"home_scores"`

	// Records are the "W-L" or "W-L-T" snapshots published on the box
	// score, i.e. the records *after* this game.
	AwayRecord string `json:"away_record"`
	HomeRecord string `json:"home_record"`

	Tag Tag `json:"tag,omitempty"`

	// Provenance. BoxscoreHTML allows re-parsing without a second fetch.
	BoxscoreURL  string `json:"boxscore_url"`
	BoxscoreHTML string `json:"boxscore_html,omitempty"`
}

func (g *Game) String() string {
	return fmt.Sprintf("%s at %s, %s", g.TeamAway, g.TeamHome, g.StartTime.Format("2006-01-02 15:04"))
}

// ShortName converts a full franchise name to its short form, e.g.
// "Dallas Cowboys" to "Cowboys". The Washington Football Team is the one
// franchise whose nickname is two words.
func ShortName(team string) string {
	if strings.Contains(strings.ToLower(team), "football team") {
		return "Football Team"
	}
	tokens := strings.Fields(team)
	if len(tokens) == 0 {
		return team
	}
	return tokens[len(tokens)-1]
}
