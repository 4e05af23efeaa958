package game

import "fmt"

// Record is a team's running win-loss-tie count.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// String renders the record as "7-2" or "7-2-1"; the tie count is only
// shown when nonzero, matching how records are conventionally written.
func (r Record) String() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// Records maps a full team name to its running record.
type Records map[string]Record

// Apply folds one game's result into the records.
func (rec Records) Apply(g *Game) {
	home := rec[g.TeamHome]
	away := rec[g.TeamAway]

	switch {
	case g.HomeScores.Final > g.AwayScores.Final:
		home.Wins++
		away.Losses++
	case g.HomeScores.Final < g.AwayScores.Final:
		away.Wins++
		home.Losses++
	default:
		home.Ties++
		away.Ties++
	}

	rec[g.TeamHome] = home
	rec[g.TeamAway] = away
}

func (rec Records) clone() Records {
	out := make(Records, len(rec))
	for team, r := range rec {
		out[team] = r
	}
	return out
}

// RecordsByWeek replays a season's regular-season results in order and
// returns, for each week index, every team's record *before* that week was
// played. The returned slice has one extra trailing element: the records
// after the final replayed week.
func RecordsByWeek(weeks [][]*Game, regularSeasonWeeks int) []Records {
	running := make(Records)
	for _, week := range weeks {
		for _, g := range week {
			if _, ok := running[g.TeamHome]; !ok {
				running[g.TeamHome] = Record{}
			}
			if _, ok := running[g.TeamAway]; !ok {
				running[g.TeamAway] = Record{}
			}
		}
	}

	snapshots := []Records{running.clone()}
	for i, week := range weeks {
		if i >= regularSeasonWeeks {
			break
		}
		for _, g := range week {
			running.Apply(g)
		}
		snapshots = append(snapshots, running.clone())
	}
	return snapshots
}
