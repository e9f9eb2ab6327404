// internal/httpserver/server.go
//
// HTTP wiring for the Newswordy backend.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON,
//     credentialed CORS).
//   - Public endpoints: "/", "/health", "/leaderboard".
//   - Game endpoints (optional auth; guests play with an anon cookie).
//   - Auth + profile/stat endpoints (require auth).
//
// All game semantics live in internal/game; handlers only decode
// requests, resolve the caller's identity, and map core errors onto
// status codes.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/newswordy/go-server/internal/config"
	"github.com/newswordy/go-server/internal/game"
)

// Server bundles router, game service, config, and the DB handle used by
// auth and leaderboard queries.
type Server struct {
	r   *chi.Mux
	svc *game.Service
	db  *sql.DB
	cfg *config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, svc *game.Service, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc, db: db, cfg: cfg}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(15 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "newswordy-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/{gameID}/guess", "/auth/*", "/leaderboard"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.mountGameRoutes()
	s.mountAuthRoutes()
	s.r.Get("/leaderboard", s.handleLeaderboard)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeGameError maps core sentinel errors onto HTTP status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, game.ErrGameCompleted), errors.Is(err, game.ErrNoGuessesRemaining):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInvalidConfig), errors.Is(err, game.ErrInvalidWord):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrPersistence):
		writeError(w, http.StatusServiceUnavailable, "storage unavailable, retry")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// handleLeaderboard lists the top players by best score. Read-side only;
// no game invariants involved.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.QueryContext(r.Context(), `
        SELECT id, username, total_games, total_score, average_score, best_score
        FROM users
        WHERE total_games > 0
        ORDER BY best_score DESC, total_score DESC, username ASC
        LIMIT 20`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	defer rows.Close()

	type lbRow struct {
		UserID       string  `json:"userId"`
		Username     string  `json:"username"`
		TotalGames   int     `json:"totalGames"`
		TotalScore   int     `json:"totalScore"`
		AverageScore float64 `json:"averageScore"`
		BestScore    int     `json:"bestScore"`
		Rank         int     `json:"rank"`
	}
	out := []lbRow{}
	for rows.Next() {
		var row lbRow
		if err := rows.Scan(&row.UserID, &row.Username, &row.TotalGames,
			&row.TotalScore, &row.AverageScore, &row.BestScore); err != nil {
			continue
		}
		row.Rank = len(out) + 1
		out = append(out, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": out})
}
