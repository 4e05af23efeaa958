// Package render converts parsed game lists into text or HTML, optionally
// annotated with running team records, quality tags, and deep links to the
// league's video-on-demand service.
package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"nfl-game-dates/internal/game"
	"nfl-game-dates/internal/season"
)

// Format selects the rendering output.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// GamePassBaseURL is the deep-link base for individual games.
const GamePassBaseURL = "https://www.nfl.com/plus/games/"

// Options control rendering.
type Options struct {
	Format          Format
	IncludeQuality  bool
	TeamRecords     game.Records // records *before* this week; nil disables
	IncludeGamePass bool
}

// Render produces the week's rendering in input order. Games whose kickoff
// is more than an hour after the previous game's get a separator first,
// which visually groups the early, late, and primetime windows.
func Render(games []*game.Game, year int, week season.Week, opts Options) (string, error) {
	canonical, err := season.Normalize(year, week)
	if err != nil {
		return "", err
	}
	regularWeeks, err := season.RegularSeasonWeeks(year)
	if err != nil {
		return "", err
	}

	// Postseason weeks are written as post-1, post-2, ... in deep links.
	seasonPortion := "reg"
	displayWeek := canonical
	if canonical > regularWeeks {
		seasonPortion = "post"
		displayWeek = canonical - regularWeeks
	}

	var b strings.Builder
	if opts.Format == FormatHTML {
		b.WriteString("<html><body>\n")
	}

	var prevKickoff time.Time
	for i, g := range games {
		if i > 0 && g.StartTime.Sub(prevKickoff) > time.Hour {
			if opts.Format == FormatHTML {
				b.WriteString("<br/>")
			} else {
				b.WriteString("\n")
			}
		}
		prevKickoff = g.StartTime

		line := gameLine(g, opts)

		if opts.Format == FormatHTML {
			if opts.IncludeGamePass {
				url := gamePassURL(g, year, seasonPortion, displayWeek)
				fmt.Fprintf(&b, "<p><a href=%q>%s</a></p>\n", url, html.EscapeString(line))
			} else {
				fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
			}
		} else {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if opts.Format == FormatHTML {
		b.WriteString("</body></html>")
	}

	return b.String(), nil
}

// gameLine builds one game's line, e.g.
// "Titans (2-1) at Seahawks (3-0), Sunday, Sep 26, 4:05 PM (good game)".
func gameLine(g *game.Game, opts Options) string {
	awayRecord := ""
	homeRecord := ""
	if opts.TeamRecords != nil {
		if rec, ok := opts.TeamRecords[g.TeamAway]; ok {
			awayRecord = " (" + rec.String() + ")"
		}
		if rec, ok := opts.TeamRecords[g.TeamHome]; ok {
			homeRecord = " (" + rec.String() + ")"
		}
	}

	quality := ""
	if opts.IncludeQuality {
		switch g.Tag {
		case game.TagGood:
			quality = " (good game)"
		case game.TagBad:
			quality = " (bad game)"
		}
	}

	return fmt.Sprintf("%s%s at %s%s, %s%s",
		g.TeamAway, awayRecord,
		g.TeamHome, homeRecord,
		g.StartTime.Format("Monday, Jan 2, 3:04 PM"),
		quality)
}

// gamePassURL builds the provider deep link, e.g.
// https://www.nfl.com/plus/games/titans-at-seahawks-2021-reg-2
func gamePassURL(g *game.Game, year int, seasonPortion string, week int) string {
	return fmt.Sprintf("%s%s-at-%s-%d-%s-%d",
		GamePassBaseURL,
		slug(game.ShortName(g.TeamAway)),
		slug(game.ShortName(g.TeamHome)),
		year, seasonPortion, week)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
