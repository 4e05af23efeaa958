package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"nfl-game-dates/internal/boxscore"
	"nfl-game-dates/internal/game"
	"nfl-game-dates/internal/logger"
	"nfl-game-dates/internal/season"
)

const (
	BaseURL   = "https://www.pro-football-reference.com"
	UserAgent = "nfl-game-dates/1.0 (historical schedule research tool)"
	Timeout   = 30 * time.Second
)

// AccessDeniedError indicates the source blocked the request. Unlike a
// parse failure it is often retryable after backing off.
type AccessDeniedError struct {
	URL string
}

func (e *AccessDeniedError) Error() string {
	return "access denied by source: " + e.URL
}

// AsAccessDeniedError attempts to unwrap an error into an AccessDeniedError.
func AsAccessDeniedError(err error) (*AccessDeniedError, bool) {
	var adErr *AccessDeniedError
	if errors.As(err, &adErr) {
		return adErr, true
	}
	return nil, false
}

// Scraper fetches week schedules from the statistics site.
type Scraper struct {
	client  *http.Client
	baseURL string
	delay   time.Duration
}

// New creates a new Scraper instance.
func New() *Scraper {
	return NewWithBaseURL(BaseURL)
}

// NewWithBaseURL creates a Scraper against an alternate base URL, used by
// tests and mirrors.
func NewWithBaseURL(baseURL string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SetDelay sets a fixed sleep inserted after every request. Zero (the
// default) disables pacing.
func (s *Scraper) SetDelay(d time.Duration) {
	s.delay = d
}

// FetchWeek fetches and parses every game of the given canonical week,
// sorted ascending by kickoff time.
func (s *Scraper) FetchWeek(year, week int) ([]*game.Game, error) {
	url := fmt.Sprintf("%s/years/%d/week_%d.htm", s.baseURL, year, week)
	return s.fetchWeekFromURL(url, year, week)
}

func (s *Scraper) fetchWeekFromURL(url string, year, week int) ([]*game.Game, error) {
	body, err := s.get(url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing index page: %w", err)
	}

	tables := doc.Find("table.teams")
	if tables.Length() == 0 {
		// Corner case: some years fold the Super Bowl into the
		// championship round's index page as a third game. Fall back one
		// week and take the chronologically last game.
		if season.IsSuperBowl(week, year) {
			logger.Warn("no games found for Super Bowl week, reverting to prior week", logger.Fields{
				"year": year,
				"week": week,
			})
			games, err := s.FetchWeek(year, week-1)
			if err != nil {
				return nil, err
			}
			if len(games) == 0 {
				return nil, &boxscore.ParseError{
					URL:     url,
					Element: "table.teams",
					Detail:  "prior week had no games either",
				}
			}
			return games[len(games)-1:], nil
		}
		return nil, &boxscore.ParseError{
			URL:     url,
			Element: "table.teams",
			Detail:  "no game tables found",
		}
	}

	games := make([]*game.Game, 0, tables.Length())
	var outerErr error
	tables.EachWithBreak(func(i int, table *goquery.Selection) bool {
		g, err := s.fetchGame(table, url)
		if err != nil {
			outerErr = err
			return false
		}
		games = append(games, g)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].StartTime.Before(games[j].StartTime)
	})

	return games, nil
}

// fetchGame follows a game table's box-score link and parses the page.
func (s *Scraper) fetchGame(table *goquery.Selection, indexURL string) (*game.Game, error) {
	var hrefs []string
	table.Find("a").Each(func(i int, link *goquery.Selection) {
		if href, ok := link.Attr("href"); ok && strings.Contains(href, "/boxscores/") {
			hrefs = append(hrefs, href)
		}
	})
	if len(hrefs) != 1 {
		return nil, &boxscore.ParseError{
			URL:     indexURL,
			Element: "table.teams",
			Detail:  fmt.Sprintf("expected exactly 1 box-score link, found %d", len(hrefs)),
		}
	}

	boxscoreURL := s.baseURL + hrefs[0]
	body, err := s.get(boxscoreURL)
	if err != nil {
		return nil, err
	}

	g, err := boxscore.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing box score %s: %w", boxscoreURL, err)
	}
	g.BoxscoreURL = boxscoreURL

	return g, nil
}

// get fetches a URL with the fixed user agent, sniffing for the source's
// access-denial page and honoring the configured pacing delay.
func (s *Scraper) get(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	logger.IncrCounter("scraper.fetches")
	logger.RecordTiming("scraper.fetch", time.Since(start))

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	body := string(data)
	if strings.Contains(strings.ToLower(body), "access denied") {
		return "", &AccessDeniedError{URL: url}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status code %d", url, resp.StatusCode)
	}

	return body, nil
}
