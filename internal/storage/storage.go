package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nfl-game-dates/internal/game"
)

// DefaultDataDir is where season archives live unless overridden.
const DefaultDataDir = "~/.local/share/nfl-game-dates"

// SeasonArchive is a season's fetched weeks. Weeks[i] holds the games of
// canonical week i+1; an unfetched week is a nil slice.
type SeasonArchive struct {
	Year      int            `json:"year"`
	Weeks     [][]*game.Game `json:"weeks"`
	UpdatedAt string         `json:"updated_at"` // RFC3339
}

// NewSeasonArchive creates an empty archive for a season.
func NewSeasonArchive(year int) *SeasonArchive {
	return &SeasonArchive{Year: year}
}

// Week returns the games of a canonical week, if archived.
func (a *SeasonArchive) Week(week int) ([]*game.Game, bool) {
	if week < 1 || week > len(a.Weeks) || a.Weeks[week-1] == nil {
		return nil, false
	}
	return a.Weeks[week-1], true
}

// SetWeek stores a week's games, growing the week list as needed.
func (a *SeasonArchive) SetWeek(week int, games []*game.Game) {
	for len(a.Weeks) < week {
		a.Weeks = append(a.Weeks, nil)
	}
	a.Weeks[week-1] = games
}

// Store handles persistence of season archives.
type Store struct {
	dataDir string
}

// New creates a new Store instance rooted at dataDir, expanding a leading
// "~/" and creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

func (s *Store) seasonPath(year int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("season_%d.json", year))
}

// LoadSeason loads a season archive from disk. A missing file yields an
// empty archive, not an error.
func (s *Store) LoadSeason(year int) (*SeasonArchive, error) {
	data, err := os.ReadFile(s.seasonPath(year))
	if err != nil {
		if os.IsNotExist(err) {
			return NewSeasonArchive(year), nil
		}
		return nil, fmt.Errorf("reading season archive: %w", err)
	}

	var archive SeasonArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("parsing season archive: %w", err)
	}

	return &archive, nil
}

// SaveSeason saves a season archive to disk.
func (s *Store) SaveSeason(archive *SeasonArchive) error {
	archive.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding season archive: %w", err)
	}

	if err := os.WriteFile(s.seasonPath(archive.Year), data, 0644); err != nil {
		return fmt.Errorf("writing season archive: %w", err)
	}

	return nil
}

// Years lists the seasons with an archive on disk, in directory order.
func (s *Store) Years() ([]int, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	var years []int
	for _, entry := range entries {
		var year int
		if _, err := fmt.Sscanf(entry.Name(), "season_%d.json", &year); err == nil {
			years = append(years, year)
		}
	}
	return years, nil
}
