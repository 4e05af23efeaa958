package boxscore

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"nfl-game-dates/internal/game"
	"nfl-game-dates/internal/logger"
)

// ParseError indicates that a fetched document did not match any known
// shape. It is not retryable; it usually means a source-format change or a
// corrupt fetch.
type ParseError struct {
	URL     string
	Element string
	Detail  string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parsing %s: %s", e.Element, e.Detail)
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	return msg
}

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pErr *ParseError
	if errors.As(err, &pErr) {
		return pErr, true
	}
	return nil, false
}

// Super Bowls use "vs.", all other games use "at".
var teamSeparator = regexp.MustCompile(` at | vs\. `)

// Kickoff text looks like "Thursday Sep 8, 2011 8:40pm". Older pages vary
// slightly in month form and meridiem casing.
var kickoffLayouts = []string{
	"Monday Jan 2, 2006 3:04pm",
	"Monday Jan 2, 2006 3:04 pm",
	"Monday Jan 2, 2006 3:04PM",
	"Monday Jan 2, 2006 3:04 PM",
	"Monday January 2, 2006 3:04pm",
	"Monday January 2, 2006 3:04 PM",
}

// Parse converts a box-score document into a game record. It is a pure
// function of the document text; the caller owns provenance (BoxscoreURL)
// and any caching of the returned record.
func Parse(html string) (*game.Game, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	teamAway, teamHome, err := parseTitle(doc)
	if err != nil {
		return nil, err
	}

	// The score summary is the authoritative pair of final scores, used
	// below to cross-check the linescore.
	scorebox := doc.Find("div.scorebox")
	if scorebox.Length() != 1 {
		return nil, &ParseError{
			Element: "div.scorebox",
			Detail:  fmt.Sprintf("expected exactly 1, found %d", scorebox.Length()),
		}
	}

	scoreDivs := scorebox.Find("div.score")
	if scoreDivs.Length() != 2 {
		return nil, &ParseError{
			Element: "div.score",
			Detail:  fmt.Sprintf("expected exactly 2, found %d", scoreDivs.Length()),
		}
	}
	awayFinal, err := cellInt(scoreDivs.Eq(0).Text(), "away score summary")
	if err != nil {
		return nil, err
	}
	homeFinal, err := cellInt(scoreDivs.Eq(1).Text(), "home score summary")
	if err != nil {
		return nil, err
	}

	awayRecord, homeRecord, err := parseRecords(scorebox)
	if err != nil {
		return nil, err
	}

	awayScores, homeScores, err := parseLinescore(doc, teamAway, teamHome)
	if err != nil {
		return nil, err
	}

	// A handful of pages list the scorebox teams in the opposite order
	// from the linescore. Tolerated with a warning; anything else is a
	// structural failure.
	if awayFinal != awayScores.Final {
		if awayFinal != homeScores.Final {
			return nil, &ParseError{
				Element: "div.score",
				Detail: fmt.Sprintf("away final %d matches neither linescore final (%d/%d)",
					awayFinal, awayScores.Final, homeScores.Final),
			}
		}
		logger.Warn("score summary and linescore are in swapped order", logger.Fields{
			"away": teamAway,
			"home": teamHome,
		})
	} else if homeFinal != homeScores.Final {
		if homeFinal != awayScores.Final {
			return nil, &ParseError{
				Element: "div.score",
				Detail: fmt.Sprintf("home final %d matches neither linescore final (%d/%d)",
					homeFinal, awayScores.Final, homeScores.Final),
			}
		}
		logger.Warn("score summary and linescore are in swapped order", logger.Fields{
			"away": teamAway,
			"home": teamHome,
		})
	}

	startTime, err := parseKickoff(doc)
	if err != nil {
		return nil, err
	}

	return &game.Game{
		TeamAway:     teamAway,
		TeamHome:     teamHome,
		StartTime:    startTime,
		AwayScores:   awayScores,
		HomeScores:   homeScores,
		AwayRecord:   awayRecord,
		HomeRecord:   homeRecord,
		BoxscoreHTML: html,
	}, nil
}

// parseTitle extracts the away and home team names from the page title.
//
// Title variants by era:
//
//	New Orleans Saints at Green Bay Packers - September 8th, 2011 | ...
//	Wild Card - Atlanta Falcons at Arizona Cardinals - January 3rd, 2009 | ...
//	Dallas Cowboys  at  Tampa Bay Buccaneers - September 9th, 2021 - Raymond James Stadium | ...
func parseTitle(doc *goquery.Document) (away, home string, err error) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", "", &ParseError{Element: "title", Detail: "missing page title"}
	}

	tokens := teamSeparator.Split(title, 2)
	if len(tokens) != 2 {
		return "", "", &ParseError{
			Element: "title",
			Detail:  fmt.Sprintf("no team separator in %q", title),
		}
	}

	away = strings.TrimSpace(tokens[0])
	// Playoff pages carry a "<round> - " prefix before the away team.
	if parts := strings.Split(away, " - "); len(parts) > 1 {
		away = strings.TrimSpace(parts[1])
	}

	// The home token trails off into the date (and, for 2021+, the
	// stadium); everything from the first " - " on is dropped.
	home = strings.TrimSpace(strings.Split(tokens[1], " - ")[0])

	return away, home, nil
}

// parseRecords collects the two post-game "W-L" / "W-L-T" snapshots from
// the score summary: the only short, hyphenated text nodes inside it.
func parseRecords(scorebox *goquery.Selection) (awayRecord, homeRecord string, err error) {
	var records []string
	scorebox.Find("div").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) < 10 && strings.Contains(text, "-") {
			records = append(records, text)
		}
	})
	if len(records) != 2 {
		return "", "", &ParseError{
			Element: "div.scorebox",
			Detail:  fmt.Sprintf("expected 2 team record strings, found %d", len(records)),
		}
	}
	return records[0], records[1], nil
}

// parseLinescore reads the two-row quarter-by-quarter table. Row order
// matches the title (away first), cross-checked against the name cell.
func parseLinescore(doc *goquery.Document, teamAway, teamHome string) (away, home game.ScoreLine, err error) {
	tables := doc.Find("table.linescore")
	if tables.Length() != 1 {
		return away, home, &ParseError{
			Element: "table.linescore",
			Detail:  fmt.Sprintf("expected exactly 1, found %d", tables.Length()),
		}
	}

	rows := tables.First().Find("tbody tr")
	if rows.Length() != 2 {
		return away, home, &ParseError{
			Element: "table.linescore",
			Detail:  fmt.Sprintf("expected 2 rows, found %d", rows.Length()),
		}
	}

	for i := 0; i < 2; i++ {
		expectTeam := teamAway
		if i == 1 {
			expectTeam = teamHome
		}
		line, rowErr := parseScoreRow(rows.Eq(i), expectTeam)
		if rowErr != nil {
			return away, home, rowErr
		}
		if i == 0 {
			away = line
		} else {
			home = line
		}
	}
	return away, home, nil
}

// parseScoreRow parses one linescore row. After the logo and name columns
// the row has 7, 8, or 9 score cells total depending on overtime:
//
//	7 cells: logo, name, q1-q4, final
//	8 cells: logo, name, q1-q4, ot, final
//	9 cells: logo, name, q1-q4, ot, ot2, final
func parseScoreRow(row *goquery.Selection, team string) (game.ScoreLine, error) {
	var line game.ScoreLine

	cells := row.Find("td")
	n := cells.Length()
	if n < 7 || n > 9 {
		return line, &ParseError{
			Element: "table.linescore",
			Detail:  fmt.Sprintf("unexpected column count %d for %s", n, team),
		}
	}

	if name := cells.Eq(1).Text(); !strings.Contains(name, team) {
		return line, &ParseError{
			Element: "table.linescore",
			Detail:  fmt.Sprintf("row name %q does not match team %q", strings.TrimSpace(name), team),
		}
	}

	for q := 0; q < 4; q++ {
		v, err := cellInt(cells.Eq(2+q).Text(), fmt.Sprintf("quarter %d score", q+1))
		if err != nil {
			return line, err
		}
		line.Quarters[q] = v
	}

	final, err := cellInt(cells.Eq(n-1).Text(), "final score")
	if err != nil {
		return line, err
	}
	line.Final = final

	switch n {
	case 7:
		line.Overtime = "0"
	case 8:
		line.Overtime = strings.TrimSpace(cells.Eq(6).Text())
		if _, err := cellInt(line.Overtime, "overtime score"); err != nil {
			return line, err
		}
	case 9:
		// Double overtime: keep the source's two values comma-joined.
		line.Overtime = strings.TrimSpace(cells.Eq(6).Text()) + "," + strings.TrimSpace(cells.Eq(7).Text())
	}

	return line, nil
}

// parseKickoff reads the metadata block: a date line followed by a
// "Start Time" line, concatenated and parsed as a timezone-naive local
// stamp. The site does not disclose its timezone, so the clock text is
// preserved as written and never shifted.
func parseKickoff(doc *goquery.Document) (time.Time, error) {
	metas := doc.Find("div.scorebox_meta")
	if metas.Length() != 1 {
		return time.Time{}, &ParseError{
			Element: "div.scorebox_meta",
			Detail:  fmt.Sprintf("expected exactly 1, found %d", metas.Length()),
		}
	}

	divs := metas.First().Find("div")
	if divs.Length() < 2 {
		return time.Time{}, &ParseError{
			Element: "div.scorebox_meta",
			Detail:  fmt.Sprintf("expected date and start-time lines, found %d lines", divs.Length()),
		}
	}

	dateText := strings.TrimSpace(divs.Eq(0).Text())
	timeLine := strings.TrimSpace(divs.Eq(1).Text())
	if !strings.HasPrefix(timeLine, "Start Time") {
		return time.Time{}, &ParseError{
			Element: "div.scorebox_meta",
			Detail:  fmt.Sprintf("expected a Start Time line, found %q", timeLine),
		}
	}

	parts := strings.SplitN(timeLine, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, &ParseError{
			Element: "div.scorebox_meta",
			Detail:  fmt.Sprintf("no time value in %q", timeLine),
		}
	}
	timeText := strings.TrimSpace(parts[1])

	stamp := dateText + " " + timeText
	for _, layout := range kickoffLayouts {
		if t, err := time.Parse(layout, stamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{
		Element: "div.scorebox_meta",
		Detail:  fmt.Sprintf("unparseable kickoff %q", stamp),
	}
}

func cellInt(text, what string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &ParseError{
			Element: what,
			Detail:  fmt.Sprintf("non-numeric value %q", strings.TrimSpace(text)),
		}
	}
	return v, nil
}
