package season

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Supported year range for week normalization. The calendar tables
// themselves go back to 1961.
const (
	MinYear          = 1966
	MaxYear          = 2050
	minCalendarYear  = 1961
	wildCardFirstUse = 1978
)

// Round identifies a playoff round.
type Round int

const (
	RoundNone Round = iota
	RoundWildCard
	RoundDivisional
	RoundChampionship
	RoundSuperBowl
)

func (r Round) String() string {
	switch r {
	case RoundWildCard:
		return "wild card"
	case RoundDivisional:
		return "divisional"
	case RoundChampionship:
		return "championship"
	case RoundSuperBowl:
		return "super bowl"
	default:
		return "none"
	}
}

// Week is a raw week designator: either a numeric week (Number > 0) or a
// playoff round name (Round != RoundNone). Exactly one of the two is set.
type Week struct {
	Number int
	Round  Round
}

// DomainError indicates an invalid or unsupported year or week designator.
type DomainError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// AsDomainError attempts to unwrap an error into a DomainError.
func AsDomainError(err error) (*DomainError, bool) {
	var dErr *DomainError
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}

// foldName lowercases s and removes all whitespace, so that
// "sUpeR      boWL" matches "superbowl".
func foldName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

// ParseWeek parses a raw week string, which may be a numeral ("1", "19")
// or a playoff round name ("wild card", case- and whitespace-insensitive).
func ParseWeek(s string) (Week, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return Week{Number: n}, nil
	}

	switch foldName(s) {
	case "wildcard":
		return Week{Round: RoundWildCard}, nil
	case "divisional":
		return Week{Round: RoundDivisional}, nil
	case "championship":
		return Week{Round: RoundChampionship}, nil
	case "superbowl":
		return Week{Round: RoundSuperBowl}, nil
	}
	return Week{}, &DomainError{Field: "week", Value: s, Reason: "unrecognized week name"}
}

// RegularSeasonWeeks returns the number of weeks in the regular season for
// any year >= 1961.
//
// See https://en.wikipedia.org/wiki/NFL_regular_season for the history.
func RegularSeasonWeeks(year int) (int, error) {
	if year < minCalendarYear {
		return 0, &DomainError{
			Field:  "year",
			Value:  strconv.Itoa(year),
			Reason: fmt.Sprintf("seasons before %d are not supported", minCalendarYear),
		}
	}

	switch {
	case year <= 1977:
		if year == 1966 {
			return 15, nil
		}
		return 14, nil
	case year <= 1989:
		// 1987 had fewer games played than other 16-week seasons (strike
		// replacements), but the schedule still spanned 16 weeks.
		if year == 1982 {
			return 17, nil
		}
		return 16, nil
	case year <= 2020:
		if year == 1993 || year == 2001 {
			return 18, nil
		}
		return 17, nil
	default:
		return 18, nil
	}
}

// PlayoffOffset returns how many weeks after the end of the regular season
// the given round was played. E.g. for 2010, the wild-card round is 1 week
// after the end of the regular season.
func PlayoffOffset(round Round, year int) (int, error) {
	if year < wildCardFirstUse {
		switch round {
		case RoundDivisional:
			return 1, nil
		case RoundChampionship:
			return 2, nil
		case RoundSuperBowl:
			return 3, nil
		case RoundWildCard:
			return 0, &DomainError{
				Field:  "week",
				Value:  round.String(),
				Reason: fmt.Sprintf("the wild card round did not exist before %d", wildCardFirstUse),
			}
		}
	} else {
		switch round {
		case RoundWildCard:
			return 1, nil
		case RoundDivisional:
			return 2, nil
		case RoundChampionship:
			return 3, nil
		case RoundSuperBowl:
			return 4, nil
		}
	}
	return 0, &DomainError{Field: "week", Value: round.String(), Reason: "not a playoff round"}
}

// IsSuperBowl reports whether the canonical week number is the Super Bowl
// week for the given season year.
func IsSuperBowl(week, year int) bool {
	n, err := RegularSeasonWeeks(year)
	if err != nil {
		return false
	}
	offset, err := PlayoffOffset(RoundSuperBowl, year)
	if err != nil {
		return false
	}
	return week == n+offset
}

// Normalize converts a week designator into a canonical 1-indexed week
// number for the given season year.
func Normalize(year int, week Week) (int, error) {
	if year < MinYear || year > MaxYear {
		return 0, &DomainError{
			Field:  "year",
			Value:  strconv.Itoa(year),
			Reason: fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear),
		}
	}

	if week.Round == RoundNone {
		if week.Number < 1 {
			return 0, &DomainError{
				Field:  "week",
				Value:  strconv.Itoa(week.Number),
				Reason: "week number must be >= 1",
			}
		}
		return week.Number, nil
	}

	n, err := RegularSeasonWeeks(year)
	if err != nil {
		return 0, err
	}
	offset, err := PlayoffOffset(week.Round, year)
	if err != nil {
		return 0, err
	}
	return n + offset, nil
}

// NormalizeStrings is the string-facing variant of Normalize: both the year
// and the week may arrive as raw text from a command line or URL.
func NormalizeStrings(yearStr, weekStr string) (year, week int, err error) {
	year, convErr := strconv.Atoi(strings.TrimSpace(yearStr))
	if convErr != nil {
		return 0, 0, &DomainError{Field: "year", Value: yearStr, Reason: "not a number"}
	}
	w, err := ParseWeek(weekStr)
	if err != nil {
		return 0, 0, err
	}
	week, err = Normalize(year, w)
	if err != nil {
		return 0, 0, err
	}
	return year, week, nil
}

// IsPostseason reports whether the canonical week falls after the regular
// season.
func IsPostseason(week, year int) (bool, error) {
	n, err := RegularSeasonWeeks(year)
	if err != nil {
		return false, err
	}
	return week > n, nil
}

// WeekName returns a human-readable name for a zero-indexed week, e.g.
// "week 12" or "divisional".
func WeekName(index, year int) (string, error) {
	n, err := RegularSeasonWeeks(year)
	if err != nil {
		return "", err
	}
	if index < n {
		return fmt.Sprintf("week %d", index+1), nil
	}

	rounds := []Round{RoundWildCard, RoundDivisional, RoundChampionship, RoundSuperBowl}
	if year < wildCardFirstUse {
		rounds = rounds[1:]
	}
	playoffIndex := index - n
	if playoffIndex >= len(rounds) {
		return "", &DomainError{
			Field:  "week",
			Value:  strconv.Itoa(index + 1),
			Reason: fmt.Sprintf("beyond the last playoff round of the %d season", year),
		}
	}
	return rounds[playoffIndex].String(), nil
}
