// Package server exposes archived and live week schedules over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"nfl-game-dates/internal/archive"
	"nfl-game-dates/internal/game"
	"nfl-game-dates/internal/logger"
	"nfl-game-dates/internal/render"
	"nfl-game-dates/internal/season"
	"nfl-game-dates/internal/storage"
)

// Server serves week schedules. Archived seasons are preferred; weeks not
// on disk are fetched live.
type Server struct {
	store      *storage.Store
	fetcher    archive.WeekFetcher
	httpServer *http.Server
}

// New creates a Server.
func New(store *storage.Store, fetcher archive.WeekFetcher) *Server {
	return &Server{
		store:   store,
		fetcher: fetcher,
	}
}

// Handler builds the HTTP handler with routing and CORS applied.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/seasons/{year}/weeks/{week}", s.handleWeek).Methods("GET")

	return cors.Default().Handler(router)
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	logger.Info("server listening", logger.Fields{"addr": addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// weekResponse is the JSON shape for a week of games. Box-score HTML is
// deliberately omitted from responses to keep them small.
type weekResponse struct {
	Year     int          `json:"year"`
	Week     int          `json:"week"`
	WeekName string       `json:"week_name"`
	Games    []*game.Game `json:"games"`
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, week, err := season.NormalizeStrings(vars["year"], vars["week"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	games, err := s.lookupWeek(year, week)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		text, err := render.Render(games, year, season.Week{Number: week}, render.Options{
			Format: render.FormatText,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, text)
		return
	}

	name, err := season.WeekName(week-1, year)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Strip the bulky provenance HTML before responding.
	slim := make([]*game.Game, len(games))
	for i, g := range games {
		copied := *g
		copied.BoxscoreHTML = ""
		slim[i] = &copied
	}

	writeJSON(w, http.StatusOK, weekResponse{
		Year:     year,
		Week:     week,
		WeekName: name,
		Games:    slim,
	})
}

// lookupWeek prefers the on-disk archive and falls back to a live fetch.
func (s *Server) lookupWeek(year, week int) ([]*game.Game, error) {
	arch, err := s.store.LoadSeason(year)
	if err != nil {
		return nil, err
	}
	if games, ok := arch.Week(week); ok {
		logger.IncrCounter("server.archive_hits")
		return games, nil
	}

	logger.IncrCounter("server.live_fetches")
	return s.fetcher.FetchWeek(year, week)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", nil, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
