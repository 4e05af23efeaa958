// Package archive pulls whole seasons week by week and persists them.
//
// Bulk pulls are long-running and the source throttles aggressively, so
// the puller retries access-denied fetches with exponential backoff, skips
// weeks already archived, and saves after every week so an interrupted
// pull loses at most one week of work.
package archive

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"nfl-game-dates/internal/game"
	"nfl-game-dates/internal/logger"
	"nfl-game-dates/internal/scraper"
	"nfl-game-dates/internal/season"
	"nfl-game-dates/internal/storage"
)

// WeekFetcher is the part of the scraper the puller depends on.
type WeekFetcher interface {
	FetchWeek(year, week int) ([]*game.Game, error)
}

// Puller fetches and archives complete seasons.
type Puller struct {
	fetcher WeekFetcher
	store   *storage.Store

	newBackOff func() backoff.BackOff
}

// NewPuller creates a Puller. Access-denied fetches retry for up to an
// hour with exponential backoff; all other failures are permanent.
func NewPuller(fetcher WeekFetcher, store *storage.Store) *Puller {
	return &Puller{
		fetcher: fetcher,
		store:   store,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 30 * time.Second
			b.MaxElapsedTime = time.Hour
			return b
		},
	}
}

// PullRange pulls every season from startYear through endYear inclusive.
func (p *Puller) PullRange(startYear, endYear int) error {
	if endYear < startYear {
		return fmt.Errorf("end year %d precedes start year %d", endYear, startYear)
	}
	for year := startYear; year <= endYear; year++ {
		if err := p.PullSeason(year); err != nil {
			return fmt.Errorf("pulling %d season: %w", year, err)
		}
	}
	return nil
}

// PullSeason fetches every week of a season (regular season plus
// playoffs), tags completed regular-season games with their quality, and
// saves the archive. Weeks already present in the archive are skipped, so
// an interrupted pull resumes where it left off.
func (p *Puller) PullSeason(year int) error {
	regular, err := season.RegularSeasonWeeks(year)
	if err != nil {
		return err
	}
	offset, err := season.PlayoffOffset(season.RoundSuperBowl, year)
	if err != nil {
		return err
	}
	totalWeeks := regular + offset

	arch, err := p.store.LoadSeason(year)
	if err != nil {
		return err
	}

	for week := 1; week <= totalWeeks; week++ {
		if _, ok := arch.Week(week); ok {
			continue
		}

		logger.Info("fetching week", logger.Fields{"year": year, "week": week})
		games, err := p.fetchWithRetry(year, week)
		if err != nil {
			return err
		}

		if week <= regular {
			for _, g := range games {
				g.Tag = game.Classify(g)
			}
		}

		arch.SetWeek(week, games)
		if err := p.store.SaveSeason(arch); err != nil {
			return err
		}
		logger.IncrCounter("archive.weeks")
	}

	return nil
}

func (p *Puller) fetchWithRetry(year, week int) ([]*game.Game, error) {
	var games []*game.Game

	operation := func() error {
		var err error
		games, err = p.fetcher.FetchWeek(year, week)
		if err == nil {
			return nil
		}
		if _, denied := scraper.AsAccessDeniedError(err); denied {
			logger.Warn("access denied, backing off", logger.Fields{
				"year": year,
				"week": week,
			})
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, p.newBackOff()); err != nil {
		return nil, err
	}
	return games, nil
}
