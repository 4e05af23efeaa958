package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"nfl-game-dates/internal/archive"
	"nfl-game-dates/internal/game"
	"nfl-game-dates/internal/logger"
	"nfl-game-dates/internal/render"
	"nfl-game-dates/internal/scraper"
	"nfl-game-dates/internal/season"
	"nfl-game-dates/internal/server"
	"nfl-game-dates/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagHTML     bool
	flagCopy     bool
	flagQuality  bool
	flagRecords  bool
	flagGamePass bool
	flagDelay    time.Duration
	flagDataDir  string
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nfl-game-dates <year> <week>",
		Short: "Fetch historical NFL week schedules",
		Long: `Fetch the team pairings and kickoff times of any NFL week since 1966.

The year is the year of week 1 (the Super Bowl played in January 2013
belongs to 2012). The week is a number (1-22) or a playoff round name:
wild card, divisional, championship, super bowl.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runFetch,
	}

	cmd.Flags().BoolVar(&flagHTML, "html", false, "Output HTML with NFL Game Pass links, instead of plain text")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy output to the clipboard")
	cmd.Flags().BoolVar(&flagQuality, "quality", false, "Annotate regular-season games as good/bad")
	cmd.Flags().BoolVar(&flagRecords, "records", false, "Prefix teams with their pre-week records (needs an archived season)")
	cmd.Flags().BoolVar(&flagGamePass, "gamepass-links", false, "Add Game Pass deep links to HTML output")
	cmd.Flags().DurationVar(&flagDelay, "delay", 0, "Fixed sleep after every request (e.g. 10s)")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", storage.DefaultDataDir, "Data directory for season archives")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newArchiveCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// runFetch is the main command logic
func runFetch(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	year, canonicalWeek, err := season.NormalizeStrings(args[0], args[1])
	if err != nil {
		return err
	}
	week, err := season.ParseWeek(args[1])
	if err != nil {
		return err
	}

	sc := scraper.New()
	sc.SetDelay(flagDelay)

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Fetching %d week %d\n", year, canonicalWeek)
	}

	games, err := sc.FetchWeek(year, canonicalWeek)
	if err != nil {
		return fmt.Errorf("fetching week: %w", err)
	}

	post, err := season.IsPostseason(canonicalWeek, year)
	if err != nil {
		return err
	}
	if flagQuality && !post {
		for _, g := range games {
			g.Tag = game.Classify(g)
		}
	}

	var records game.Records
	if flagRecords {
		records, err = recordsBeforeWeek(year, canonicalWeek)
		if err != nil {
			return err
		}
	}

	format := render.FormatText
	if flagHTML {
		format = render.FormatHTML
	}

	out, err := render.Render(games, year, week, render.Options{
		Format:          format,
		IncludeQuality:  flagQuality,
		TeamRecords:     records,
		IncludeGamePass: flagGamePass || flagHTML,
	})
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	fmt.Println(out)

	if flagCopy {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
	}

	return nil
}

// recordsBeforeWeek replays the archived season up to (but excluding) the
// requested week. Without a complete archive there is nothing to replay.
func recordsBeforeWeek(year, week int) (game.Records, error) {
	store, err := storage.New(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	arch, err := store.LoadSeason(year)
	if err != nil {
		return nil, fmt.Errorf("loading season archive: %w", err)
	}

	for w := 1; w < week; w++ {
		if _, ok := arch.Week(w); !ok {
			logger.Warn("season not fully archived, skipping records", logger.Fields{
				"year":         year,
				"missing_week": w,
			})
			return nil, nil
		}
	}

	regular, err := season.RegularSeasonWeeks(year)
	if err != nil {
		return nil, err
	}

	snapshots := game.RecordsByWeek(arch.Weeks, regular)
	idx := week - 1
	if idx >= len(snapshots) {
		idx = len(snapshots) - 1
	}
	return snapshots[idx], nil
}

func newArchiveCmd() *cobra.Command {
	var (
		startYear int
		endYear   int
		delay     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Bulk-pull whole seasons to the local archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
			if startYear == 0 {
				return fmt.Errorf("--start-year is required")
			}
			if endYear == 0 {
				endYear = startYear
			}

			store, err := storage.New(flagDataDir)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}

			sc := scraper.New()
			sc.SetDelay(delay)

			puller := archive.NewPuller(sc, store)
			if err := puller.PullRange(startYear, endYear); err != nil {
				return err
			}

			fmt.Printf("Archived seasons %d-%d\n", startYear, endYear)
			return nil
		},
	}

	cmd.Flags().IntVar(&startYear, "start-year", 0, "First season to pull (required)")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "Last season to pull (defaults to start year)")
	cmd.Flags().DurationVar(&delay, "delay", 10*time.Second, "Fixed sleep after every request")

	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve archived and live week schedules over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.New(flagDataDir)
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}

			srv := server.New(store, scraper.New())
			return srv.Start(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
