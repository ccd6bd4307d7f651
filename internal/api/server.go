// Package api is the operator-facing HTTP surface: health, tick status,
// market snapshot, leaderboard, and manual tick runs. Players never talk
// to this; the game itself lives on Discord.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/engine"
	"github.com/vicky-or-victoria/Risky-Monopoly-Electric-Boogaloo-sub000/internal/game"
)

type Queries interface {
	ListStockPrices(ctx context.Context) (map[string]int64, error)
	Leaderboard(ctx context.Context, limit int) ([]game.LeaderboardRow, error)
}

type Ticks interface {
	RunByName(ctx context.Context, name string) error
	Stats() []engine.TickStat
}

type Server struct {
	log     *slog.Logger
	queries Queries
	ticks   Ticks
	token   string
	mux     *chi.Mux
}

func New(logger *slog.Logger, queries Queries, ticks Ticks, token string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		log:     logger,
		queries: queries,
		ticks:   ticks,
		token:   token,
		mux:     chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/status", s.handleStatus)
		r.Get("/stocks", s.handleStocks)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Post("/ticks/{name}/run", s.handleRunTick)
	})
}

// authMiddleware enforces the static ops token when one is configured.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got != s.token {
				writeError(w, http.StatusUnauthorized, "invalid or missing ops token")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ticks": s.ticks.Stats()})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	prices, err := s.queries.ListStockPrices(r.Context())
	if err != nil {
		s.log.Error("stocks query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "stocks unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prices": prices})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be 1-100")
			return
		}
		limit = n
	}
	rows, err := s.queries.Leaderboard(r.Context(), limit)
	if err != nil {
		s.log.Error("leaderboard query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": rows})
}

func (s *Server) handleRunTick(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.ticks.RunByName(r.Context(), name); err != nil {
		s.log.Error("manual tick run failed", "tick", name, "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tick": name, "ran": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
