// Package server is the HTTP presentation boundary: it transports move
// intents in and state snapshots out. All game semantics live in the
// engine; handlers only translate between JSON and engine calls.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"shapetac/config"
	"shapetac/engine"
)

// Server bundles the router, session store, and base game defaults.
type Server struct {
	r     *chi.Mux
	store *Store
	base  config.GameConfig
}

// New constructs a Server, installs middleware, and registers routes.
// base supplies the game defaults merged under each create request.
func New(base config.GameConfig) *Server {
	s := &Server{r: chi.NewRouter(), store: NewStore(), base: base}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/{id}", s.handleGetState)
		r.Post("/{id}/moves", s.handleMove)
		r.Post("/{id}/ai-move", s.handleAIMove)
		r.Delete("/{id}", s.handleDelete)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("starting game server")
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router for tests.
func (s *Server) Router() chi.Router { return s.r }

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, reason string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": reason})
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// createGameReq overrides the server's game defaults per session.
// Pointer fields distinguish "absent" from an explicit zero.
type createGameReq struct {
	Radius      *int              `json:"radius"`
	TargetScore *int              `json:"targetScore"`
	MaxRounds   *int              `json:"maxRounds"`
	FirstPlayer string            `json:"firstPlayer"`
	Seats       map[string]string `json:"seats"`
	Seed        *uint64           `json:"seed"`

	BonusCells      []config.BonusCell `json:"bonusCells"`
	RandomBonuses   *int               `json:"randomBonuses"`
	FirstMoveCenter *bool              `json:"firstMoveCenter"`
	AdjacencyRange  *int               `json:"adjacencyRange"`
}

func (req createGameReq) merge(base config.GameConfig) config.GameConfig {
	cfg := base
	if req.Radius != nil {
		cfg.Radius = *req.Radius
	}
	if req.TargetScore != nil {
		cfg.TargetScore = *req.TargetScore
	}
	if req.MaxRounds != nil {
		cfg.MaxRounds = *req.MaxRounds
	}
	if req.FirstPlayer != "" {
		cfg.FirstPlayer = req.FirstPlayer
	}
	if req.Seats != nil {
		cfg.Seats = req.Seats
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.BonusCells != nil {
		cfg.Bonus.Cells = req.BonusCells
		cfg.Bonus.RandomCount = 0
	}
	if req.RandomBonuses != nil {
		cfg.Bonus.Cells = nil
		cfg.Bonus.RandomCount = *req.RandomBonuses
	}
	if req.FirstMoveCenter != nil {
		cfg.Placement.FirstMoveCenter = *req.FirstMoveCenter
	}
	if req.AdjacencyRange != nil {
		cfg.Placement.AdjacencyRange = *req.AdjacencyRange
	}
	return cfg
}

type createGameRes struct {
	ID       string           `json:"id"`
	Snapshot *engine.Snapshot `json:"snapshot"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	eng, err := engine.New(req.merge(s.base))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := s.store.Create(eng)
	log.Info().Str("game", id).Msg("game created")

	var snap *engine.Snapshot
	_ = s.withEngine(id, func(e *engine.Engine) error {
		snap = e.Snapshot()
		return nil
	})
	writeJSON(w, createGameRes{ID: id, Snapshot: snap})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	var snap *engine.Snapshot
	err := s.withEngine(chi.URLParam(r, "id"), func(e *engine.Engine) error {
		snap = e.Snapshot()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, snap)
}

type moveReq struct {
	Q int `json:"q"`
	R int `json:"r"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var snap *engine.Snapshot
	err := s.withEngine(chi.URLParam(r, "id"), func(e *engine.Engine) error {
		var err error
		snap, err = e.ApplyMove(req.Q, req.R)
		return err
	})
	s.writeMoveResult(w, snap, err)
}

func (s *Server) handleAIMove(w http.ResponseWriter, r *http.Request) {
	var snap *engine.Snapshot
	err := s.withEngine(chi.URLParam(r, "id"), func(e *engine.Engine) error {
		var err error
		snap, err = e.PlayAITurn()
		return err
	})
	s.writeMoveResult(w, snap, err)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.store.Delete(id)
	writeJSON(w, map[string]bool{"ok": true})
}

// withEngine resolves the session and runs fn under its lock.
func (s *Server) withEngine(id string, fn func(*engine.Engine) error) error {
	session, err := s.store.Get(id)
	if err != nil {
		return err
	}
	return session.Do(fn)
}

func (s *Server) writeMoveResult(w http.ResponseWriter, snap *engine.Snapshot, err error) {
	switch {
	case err == nil:
		writeJSON(w, snap)
	case errors.Is(err, ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case engine.IsInvalidMove(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("move failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
