// internal/httpserver/routes_game.go
//
// HTTP routes for game play. All four variants share the same endpoints:
//   - POST /game/new                → create a session (board fetched once)
//   - GET  /game/{gameID}           → state projection + guess history
//   - POST /game/{gameID}/guess     → submit one word
//   - GET  /game/{gameID}/scoreboard → board with unguessed words redacted
//
// Guests play with the anonymous cookie id; authenticated sessions only
// accept guesses from their owner.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newswordy/go-server/internal/game"
	"github.com/newswordy/go-server/internal/scoreboard"
)

// mountGameRoutes registers all /game routes with optional auth.
func (s *Server) mountGameRoutes() {
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/new", s.handleNewGame)
		r.Get("/{gameID}", s.handleGameState)
		r.Post("/{gameID}/guess", s.handleGuess)
		r.Get("/{gameID}/scoreboard", s.handleScoreboard)
	})
}

type newGameReq struct {
	Variant          string   `json:"variant"`
	TimePeriod       string   `json:"timePeriod"`
	Sources          []string `json:"sources"`
	SourcesGroupA    []string `json:"sourcesGroupA"`
	SourcesGroupB    []string `json:"sourcesGroupB"`
	AnchorWord       string   `json:"anchorWord"`
	MaxGuesses       int      `json:"maxGuesses"`
	UnlimitedGuesses bool     `json:"unlimitedGuesses"`
	ScoreboardSize   int      `json:"scoreboardSize"`
}

// handleNewGame validates the request, builds a game config, and creates
// the session through the core service.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	variant, err := game.ParseVariant(req.Variant)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	period, err := scoreboard.ParseTimePeriod(req.TimePeriod)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := game.Config{
		Variant:        variant,
		Period:         period,
		AnchorWord:     req.AnchorWord,
		MaxGuesses:     req.MaxGuesses,
		Unlimited:      req.UnlimitedGuesses,
		ScoreboardSize: req.ScoreboardSize,
	}
	if variant.Comparative() {
		if cfg.SourcesGroupA, err = scoreboard.ParseSources(req.SourcesGroupA); err != nil {
			writeError(w, http.StatusBadRequest, "group A: "+err.Error())
			return
		}
		if cfg.SourcesGroupB, err = scoreboard.ParseSources(req.SourcesGroupB); err != nil {
			writeError(w, http.StatusBadRequest, "group B: "+err.Error())
			return
		}
	} else {
		if cfg.Sources, err = scoreboard.ParseSources(req.Sources); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	sess, err := s.svc.CreateGame(r.Context(), cfg, s.owner(w, r))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

type guessReq struct {
	Word  string `json:"word"`
	Group string `json:"group"` // optional hint for comparison games
}

// handleGuess submits one word for the session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	res, err := s.svc.SubmitGuess(r.Context(), chi.URLParam(r, "gameID"),
		s.owner(w, r), req.Word, scoreboard.Group(req.Group))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGameState returns the session projection plus its guess history.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	sess, err := s.svc.GetState(r.Context(), id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	guesses, err := s.svc.Guesses(r.Context(), id)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game": sess, "guesses": guesses})
}

// handleScoreboard returns the session's board, progressively revealed.
func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.svc.GetScoreboard(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scoreboard": board})
}
